/*
Package deeds is an FAQ chat bot engine driven by a nested document of categories,
questions and answers.

The document is turned into an append-only tree (see pkg/arena and pkg/tree). Users move
through it with a reply keyboard: choosing a category lists what is under it, choosing a
question returns its answer. Anything the tree does not know can be saved as an
unanswered question for the maintainers.

# Document

	FAQ:
	  Payments:
	    Where can I pay?: At the front desk or online.
	    Do you take cards?: Visa and Mastercard.
	  Opening hours: Nine to six.

The first top-level key is the root; its children form the starting keyboard. JSON and
YAML documents keep their key order.

# Usage

	eng, err := deeds.New("./faq.yaml")
	if err != nil {
		log.Fatal(err)
	}

	reply, err := eng.Reply(ctx, "chat-42", domain.ParseInput("/start"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(reply.Text, reply.Keyboard)

Transports (terminal, HTTP, Telegram, MCP) live under pkg/runner and pkg/adapters and
only depend on the ports.Bot interface that Engine implements.
*/
package deeds
