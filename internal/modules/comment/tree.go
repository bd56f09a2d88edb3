package comment

import "github.com/inkstream/core/internal/models"

// Node is a comment with its nested replies.
type Node struct {
	models.CommentModel
	Children []*Node `json:"children"`
}

// Nest converts a flat, creation-ordered comment list into a forest of root
// comments with nested replies. A comment whose parent is absent from the
// input is demoted to a root rather than dropped, so a reply survives the
// deletion of its parent. Root order follows input order.
func Nest(flat []models.CommentModel) []*Node {
	byID := make(map[string]*Node, len(flat))
	nodes := make([]*Node, 0, len(flat))
	for _, row := range flat {
		n := &Node{CommentModel: row, Children: []*Node{}}
		byID[row.ID] = n
		nodes = append(nodes, n)
	}

	roots := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.ParentID != nil {
			if parent, ok := byID[*n.ParentID]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}
