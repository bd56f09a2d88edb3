package comment

import (
	"testing"

	"github.com/inkstream/core/internal/models"
)

func flatComment(id string, parentID *string) models.CommentModel {
	c := models.CommentModel{Content: "c-" + id, ParentID: parentID}
	c.ID = id
	return c
}

func TestNestBuildsForest(t *testing.T) {
	a := "A"
	b := "B"
	flat := []models.CommentModel{
		flatComment("A", nil),
		flatComment("B", &a),
		flatComment("C", &b),
		flatComment("D", nil),
	}

	roots := Nest(flat)

	if len(roots) != 2 {
		t.Fatalf("roots = %d, want 2", len(roots))
	}
	if roots[0].ID != "A" || roots[1].ID != "D" {
		t.Fatalf("root order = [%s %s], want [A D]", roots[0].ID, roots[1].ID)
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].ID != "B" {
		t.Fatalf("A's children = %v, want [B]", roots[0].Children)
	}
	if len(roots[0].Children[0].Children) != 1 || roots[0].Children[0].Children[0].ID != "C" {
		t.Fatalf("B's children wrong, want [C]")
	}
	if len(roots[1].Children) != 0 {
		t.Fatalf("D's children = %v, want none", roots[1].Children)
	}
}

func TestNestDemotesOrphans(t *testing.T) {
	gone := "deleted-parent"
	flat := []models.CommentModel{
		flatComment("A", nil),
		flatComment("B", &gone),
	}

	roots := Nest(flat)

	if len(roots) != 2 {
		t.Fatalf("roots = %d, want orphan demoted to root", len(roots))
	}
	if roots[1].ID != "B" {
		t.Fatalf("orphan not preserved: %v", roots)
	}
}

func TestNestEmptyInput(t *testing.T) {
	roots := Nest(nil)
	if len(roots) != 0 {
		t.Fatalf("roots = %v, want empty forest", roots)
	}
}

func TestNestChildrenNeverNil(t *testing.T) {
	roots := Nest([]models.CommentModel{flatComment("A", nil)})
	if roots[0].Children == nil {
		t.Fatal("Children is nil; it must serialize as [] not null")
	}
}
