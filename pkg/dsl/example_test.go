package dsl_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/deeds"
	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/dsl"
)

func Example() {
	b := dsl.New("FAQ")
	b.Category("Payments").
		Question("Where can I pay?", "At the front desk or online.")
	b.Question("Opening hours", "Nine to six.")

	src, err := b.Source()
	if err != nil {
		log.Fatal(err)
	}
	eng, err := deeds.New("", deeds.WithSource(src))
	if err != nil {
		log.Fatal(err)
	}

	reply, err := eng.Reply(context.Background(), "example", domain.TextInput("Opening hours"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(reply.Text)
	// Output: Nine to six.
}
