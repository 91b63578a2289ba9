package runtime

import (
	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/tree"
)

// keyboard returns the reply keyboard for the session's category.
// A category that disappeared with a reload drops the session back to the root.
func (e *Engine) keyboard(nav *tree.Navigator, s *domain.Session) []string {
	if s.Category != "" {
		children, err := nav.Children(s.Category)
		if err == nil && len(children) > 0 {
			return children
		}
		e.logger.Debug("category no longer in tree, resetting keyboard", "session_id", s.ID, "category", s.Category)
		s.Category = ""
	}

	root, err := nav.RootChildren()
	if err != nil {
		return nil
	}
	return root
}
