package content

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/inkstream/core/internal/database"
	"github.com/inkstream/core/internal/models"
	"github.com/inkstream/core/internal/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }

func statusPtr(s models.ContentStatus) *models.ContentStatus { return &s }

func TestCreateDerivesSlugAndResolvesCollision(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	first, err := svc.Create(&CreateContentDTO{Title: "Hello World", Content: "<p>hi</p>"}, "author-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Slug != "hello-world" {
		t.Fatalf("slug = %q, want hello-world", first.Slug)
	}
	if first.Status != models.StatusDraft {
		t.Fatalf("status = %q, want draft", first.Status)
	}
	if first.PublishedAt != nil {
		t.Fatalf("published_at = %v, want nil for draft", first.PublishedAt)
	}

	second, err := svc.Create(&CreateContentDTO{Title: "Hello World", Content: "<p>again</p>"}, "author-1")
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.Slug != "hello-world-2" {
		t.Fatalf("second slug = %q, want hello-world-2", second.Slug)
	}

	third, err := svc.Create(&CreateContentDTO{Title: "Hello World", Content: "<p>thrice</p>"}, "author-1")
	if err != nil {
		t.Fatalf("create third: %v", err)
	}
	if third.Slug != "hello-world-3" {
		t.Fatalf("third slug = %q, want hello-world-3", third.Slug)
	}
}

func TestCreateRejectsMissingFields(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	if _, err := svc.Create(&CreateContentDTO{Title: "   ", Content: "body"}, "a"); err != ErrMissingFields {
		t.Fatalf("blank title: err = %v, want ErrMissingFields", err)
	}
	if _, err := svc.Create(&CreateContentDTO{Title: "Title", Content: ""}, "a"); err != ErrMissingFields {
		t.Fatalf("empty content: err = %v, want ErrMissingFields", err)
	}
}

func TestCreateNormalizesExplicitSlug(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	item, err := svc.Create(&CreateContentDTO{
		Title:   "Some Title",
		Content: "body",
		Slug:    "  My Custom Slug!! ",
	}, "a")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Slug != "my-custom-slug" {
		t.Fatalf("slug = %q, want my-custom-slug", item.Slug)
	}
}

func TestCreateFallbackSlugForUnsluggableTitle(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	item, err := svc.Create(&CreateContentDTO{Title: "!!!", Content: "body"}, "a")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(item.Slug, "post-") {
		t.Fatalf("slug = %q, want post-<timestamp> fallback", item.Slug)
	}
}

func TestCreatePublishedSetsTimestamp(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeBlog)

	item, err := svc.Create(&CreateContentDTO{
		Title:   "Launch Day",
		Content: "body",
		Status:  models.StatusPublished,
	}, "a")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.PublishedAt == nil {
		t.Fatal("published_at is nil for a published item")
	}
	if time.Since(*item.PublishedAt) > time.Minute {
		t.Fatalf("published_at = %v, not recent", item.PublishedAt)
	}
}

func TestCreateUnknownStatusBecomesDraft(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	item, err := svc.Create(&CreateContentDTO{Title: "T", Content: "b", Status: "archived"}, "a")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Status != models.StatusDraft {
		t.Fatalf("status = %q, want draft", item.Status)
	}
	if item.PublishedAt != nil {
		t.Fatal("published_at set for a drafted item")
	}
}

func TestUpdatePublishLifecycle(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	item, err := svc.Create(&CreateContentDTO{Title: "Lifecycle", Content: "body"}, "a")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	published, err := svc.Update(item.ID, &UpdateContentDTO{Status: statusPtr(models.StatusPublished)})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatal("published_at is nil after publish")
	}
	firstPublish := *published.PublishedAt

	// Updating an unrelated field must not touch the publish timestamp.
	touched, err := svc.Update(item.ID, &UpdateContentDTO{Excerpt: strPtr("a teaser")})
	if err != nil {
		t.Fatalf("update excerpt: %v", err)
	}
	if touched.PublishedAt == nil || !touched.PublishedAt.Equal(firstPublish) {
		t.Fatalf("published_at changed on excerpt update: %v != %v", touched.PublishedAt, firstPublish)
	}

	unpublished, err := svc.Update(item.ID, &UpdateContentDTO{Status: statusPtr(models.StatusDraft)})
	if err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if unpublished.PublishedAt != nil {
		t.Fatalf("published_at = %v after unpublish, want nil", unpublished.PublishedAt)
	}

	time.Sleep(10 * time.Millisecond)
	republished, err := svc.Update(item.ID, &UpdateContentDTO{Status: statusPtr(models.StatusPublished)})
	if err != nil {
		t.Fatalf("republish: %v", err)
	}
	if republished.PublishedAt == nil {
		t.Fatal("published_at is nil after republish")
	}
	if !republished.PublishedAt.After(firstPublish) {
		t.Fatalf("republish kept the old timestamp: %v", republished.PublishedAt)
	}
}

func TestUpdateRepublishResetsTimestamp(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	item, err := svc.Create(&CreateContentDTO{
		Title:   "Already Out",
		Content: "body",
		Status:  models.StatusPublished,
	}, "a")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	first := *item.PublishedAt

	time.Sleep(10 * time.Millisecond)
	// Writing status=published again moves the timestamp even though the
	// value did not change.
	again, err := svc.Update(item.ID, &UpdateContentDTO{Status: statusPtr(models.StatusPublished)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !again.PublishedAt.After(first) {
		t.Fatalf("published_at = %v, want later than %v", again.PublishedAt, first)
	}
}

func TestUpdateNormalizesSlug(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	item, err := svc.Create(&CreateContentDTO{Title: "Original", Content: "body"}, "a")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(item.ID, &UpdateContentDTO{Slug: strPtr("New Fancy Slug!")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "new-fancy-slug" {
		t.Fatalf("slug = %q, want new-fancy-slug", updated.Slug)
	}
}

func TestUpdateMissingReturnsNil(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	item, err := svc.Update("00000000-0000-0000-0000-000000000000", &UpdateContentDTO{Title: strPtr("x")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if item != nil {
		t.Fatalf("item = %v, want nil for missing id", item)
	}
}

func TestUpdateReplacesTagSet(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	tagA := models.TagModel{Name: "Go", Slug: "go"}
	tagB := models.TagModel{Name: "Web", Slug: "web"}
	if err := db.Create(&tagA).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}
	if err := db.Create(&tagB).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}

	item, err := svc.Create(&CreateContentDTO{
		Title:   "Tagged",
		Content: "body",
		TagIDs:  []string{tagA.ID},
	}, "a")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByIdentifier(item.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0].Slug != "go" {
		t.Fatalf("tags after create = %v, want [go]", got.Tags)
	}

	// A supplied tag list replaces the whole set.
	updated, err := svc.Update(item.ID, &UpdateContentDTO{TagIDs: []string{tagB.ID}})
	if err != nil {
		t.Fatalf("update tags: %v", err)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].Slug != "web" {
		t.Fatalf("tags after replace = %v, want [web]", updated.Tags)
	}

	// A nil tag list leaves associations alone.
	untouched, err := svc.Update(item.ID, &UpdateContentDTO{Title: strPtr("Renamed")})
	if err != nil {
		t.Fatalf("update title: %v", err)
	}
	if len(untouched.Tags) != 1 || untouched.Tags[0].Slug != "web" {
		t.Fatalf("tags after unrelated update = %v, want [web]", untouched.Tags)
	}

	// An explicit empty list clears them.
	cleared, err := svc.Update(item.ID, &UpdateContentDTO{TagIDs: []string{}})
	if err != nil {
		t.Fatalf("clear tags: %v", err)
	}
	if len(cleared.Tags) != 0 {
		t.Fatalf("tags after clear = %v, want none", cleared.Tags)
	}
}

func TestCreateCollapsesRepeatedTagIDs(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	tag := models.TagModel{Name: "Go", Slug: "go"}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}

	// A repeated tag id in the payload must not be mistaken for a slug race.
	item, err := svc.Create(&CreateContentDTO{
		Title:   "Twice Tagged",
		Content: "body",
		TagIDs:  []string{tag.ID, tag.ID},
	}, "a")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var links int64
	db.Model(&models.ContentTag{}).Where("content_id = ?", item.ID).Count(&links)
	if links != 1 {
		t.Fatalf("links = %d, want the repeated id collapsed to 1", links)
	}
}

func TestCreateRollsBackOnTagInsertFailure(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	tag := models.TagModel{Name: "Go", Slug: "go"}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}
	// Break the join table so the tag insert fails mid-transaction.
	if err := db.Migrator().DropTable(&models.ContentTag{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, err := svc.Create(&CreateContentDTO{
		Title:   "Half Written",
		Content: "body",
		TagIDs:  []string{tag.ID},
	}, "a")
	if err == nil {
		t.Fatal("create succeeded without its tag links")
	}
	if errors.Is(err, ErrSlugConflict) {
		t.Fatalf("tag insert failure misreported as a slug conflict: %v", err)
	}

	var contents int64
	db.Model(&models.ContentModel{}).Count(&contents)
	if contents != 0 {
		t.Fatalf("rollback left %d content rows", contents)
	}
}

func TestGetByIdentifier(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	item, err := svc.Create(&CreateContentDTO{Title: "Findable", Content: "body"}, "a")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bySlug, err := svc.GetByIdentifier("findable")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug == nil || bySlug.ID != item.ID {
		t.Fatalf("get by slug returned %v", bySlug)
	}

	byID, err := svc.GetByIdentifier(item.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID == nil || byID.Slug != "findable" {
		t.Fatalf("get by id returned %v", byID)
	}

	missing, err := svc.GetByIdentifier("no-such-slug")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing = %v, want nil", missing)
	}
}

func TestGetByIdentifierReachesDrafts(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	if _, err := svc.Create(&CreateContentDTO{Title: "Hidden Draft", Content: "body"}, "a"); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Drafts stay reachable by direct link even for anonymous readers.
	got, err := svc.GetByIdentifier("hidden-draft")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Status != models.StatusDraft {
		t.Fatalf("draft not reachable by slug: %v", got)
	}
}

func TestListVisibilityByRole(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	if _, err := svc.Create(&CreateContentDTO{Title: "Public One", Content: "b", Status: models.StatusPublished}, "a"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Create(&CreateContentDTO{Title: "Secret Draft", Content: "b"}, "a"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	q := pagination.Query{Page: 1, Size: 10}

	public, meta, err := svc.List(q, ListQuery{}, false)
	if err != nil {
		t.Fatalf("list public: %v", err)
	}
	if meta.Total != 1 || len(public) != 1 || public[0].Title != "Public One" {
		t.Fatalf("public list = %d items (total %d), want only the published one", len(public), meta.Total)
	}

	// The status filter is ignored for non-admin callers.
	sneaky, meta, err := svc.List(q, ListQuery{Status: "draft"}, false)
	if err != nil {
		t.Fatalf("list sneaky: %v", err)
	}
	if meta.Total != 1 || len(sneaky) != 1 || sneaky[0].Status != models.StatusPublished {
		t.Fatalf("status filter leaked drafts to a non-admin caller")
	}

	all, meta, err := svc.List(q, ListQuery{}, true)
	if err != nil {
		t.Fatalf("list admin: %v", err)
	}
	if meta.Total != 2 || len(all) != 2 {
		t.Fatalf("admin list = %d items (total %d), want 2", len(all), meta.Total)
	}

	drafts, meta, err := svc.List(q, ListQuery{Status: "draft"}, true)
	if err != nil {
		t.Fatalf("list drafts: %v", err)
	}
	if meta.Total != 1 || len(drafts) != 1 || drafts[0].Title != "Secret Draft" {
		t.Fatalf("admin draft filter = %v", drafts)
	}
}

func TestListPaginationWindow(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	for i := 0; i < 25; i++ {
		_, err := svc.Create(&CreateContentDTO{
			Title:   fmt.Sprintf("Item %02d", i),
			Content: "body",
			Status:  models.StatusPublished,
		}, "a")
		if err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	cases := []struct {
		page, wantLen int
	}{
		{1, 10},
		{2, 10},
		{3, 5},
		{4, 0},
	}
	for _, tc := range cases {
		items, meta, err := svc.List(pagination.Query{Page: tc.page, Size: 10}, ListQuery{}, false)
		if err != nil {
			t.Fatalf("page %d: %v", tc.page, err)
		}
		if len(items) != tc.wantLen {
			t.Fatalf("page %d: got %d items, want %d", tc.page, len(items), tc.wantLen)
		}
		// Total reflects the full match count even past the end.
		if meta.Total != 25 {
			t.Fatalf("page %d: total = %d, want 25", tc.page, meta.Total)
		}
	}
}

func TestListSearchAndTaxonomyFilters(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	cat := models.CategoryModel{Name: "News", Slug: "news"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	tag := models.TagModel{Name: "Go", Slug: "go"}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}

	if _, err := svc.Create(&CreateContentDTO{
		Title:      "Golang Generics Deep Dive",
		Content:    "body",
		Status:     models.StatusPublished,
		CategoryID: &cat.ID,
		TagIDs:     []string{tag.ID},
	}, "a"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Create(&CreateContentDTO{
		Title:   "Cooking With Cast Iron",
		Content: "body",
		Excerpt: "A love letter to the humble skillet",
		Status:  models.StatusPublished,
	}, "a"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	q := pagination.Query{Page: 1, Size: 10}

	bySearch, _, err := svc.List(q, ListQuery{Query: "GENERICS"}, false)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].Slug != "golang-generics-deep-dive" {
		t.Fatalf("case-insensitive search = %v", bySearch)
	}

	// The query also matches against the excerpt, not just the title.
	byExcerpt, _, err := svc.List(q, ListQuery{Query: "SKILLET"}, false)
	if err != nil {
		t.Fatalf("excerpt search: %v", err)
	}
	if len(byExcerpt) != 1 || byExcerpt[0].Slug != "cooking-with-cast-iron" {
		t.Fatalf("excerpt search = %v", byExcerpt)
	}

	byCategory, _, err := svc.List(q, ListQuery{Category: "news"}, false)
	if err != nil {
		t.Fatalf("category filter: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].Slug != "golang-generics-deep-dive" {
		t.Fatalf("category filter = %v", byCategory)
	}

	byTag, _, err := svc.List(q, ListQuery{Tag: "go"}, false)
	if err != nil {
		t.Fatalf("tag filter: %v", err)
	}
	if len(byTag) != 1 || byTag[0].Slug != "golang-generics-deep-dive" {
		t.Fatalf("tag filter = %v", byTag)
	}
}

func TestListOrdersByPublishTime(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	older, err := svc.Create(&CreateContentDTO{Title: "Older", Content: "b", Status: models.StatusPublished}, "a")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	newer, err := svc.Create(&CreateContentDTO{Title: "Newer", Content: "b", Status: models.StatusPublished}, "a")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	past := time.Now().Add(-time.Hour)
	if err := db.Model(&models.ContentModel{}).Where("id = ?", older.ID).Update("published_at", past).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	items, _, err := svc.List(pagination.Query{Page: 1, Size: 10}, ListQuery{}, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != newer.ID || items[1].ID != older.ID {
		t.Fatalf("order = %v, want newest publish first", items)
	}
}

func TestSlugsAreScopedPerContentType(t *testing.T) {
	db := openTestDB(t)
	articles := NewService(db, models.TypeArticle)
	blogs := NewService(db, models.TypeBlog)

	a, err := articles.Create(&CreateContentDTO{Title: "Shared Title", Content: "b"}, "a")
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	b, err := blogs.Create(&CreateContentDTO{Title: "Shared Title", Content: "b"}, "a")
	if err != nil {
		t.Fatalf("create blog: %v", err)
	}

	// The same slug may exist once per type; no suffix is appended across
	// the type boundary.
	if a.Slug != "shared-title" || b.Slug != "shared-title" {
		t.Fatalf("slugs = %q / %q, want shared-title for both", a.Slug, b.Slug)
	}

	if got, err := blogs.GetByIdentifier(a.ID); err != nil || got != nil {
		t.Fatalf("blog tree resolved an article id: %v, %v", got, err)
	}
}

func TestDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, models.TypeArticle)

	tag := models.TagModel{Name: "Go", Slug: "go"}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}

	item, err := svc.Create(&CreateContentDTO{Title: "Doomed", Content: "b", TagIDs: []string{tag.ID}}, "a")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	comment := models.CommentModel{ContentID: item.ID, AuthorID: "reader-1", Content: "nice"}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	found, err := svc.Delete(item.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !found {
		t.Fatal("delete reported not found for an existing item")
	}

	var links, comments int64
	db.Model(&models.ContentTag{}).Where("content_id = ?", item.ID).Count(&links)
	db.Model(&models.CommentModel{}).Where("content_id = ?", item.ID).Count(&comments)
	if links != 0 || comments != 0 {
		t.Fatalf("cascade left %d tag links and %d comments", links, comments)
	}

	// The tag itself survives.
	var tags int64
	db.Model(&models.TagModel{}).Count(&tags)
	if tags != 1 {
		t.Fatalf("tag count = %d, want 1", tags)
	}

	again, err := svc.Delete(item.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if again {
		t.Fatal("second delete reported found")
	}
}
