package store

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

// searchToken returns a term that appears nowhere else in the database,
// so hit counts are exact even against shared test data.
func searchToken() string {
	return "zx" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func TestSearchTierAttribution(t *testing.T) {
	db := testDB(t)
	search := NewSearchStore(db, "english")
	assoc := NewAssociationStore(db)

	token := searchToken()
	tagName := token
	t.Cleanup(func() { cleanTag(t, db, tagName) })

	byContent := mustCreatePost(t, db, "Plain title", "body mentions "+token+" here", true)
	byTitle := mustCreatePost(t, db, "Title with "+token, "unrelated body", true)
	byTag := mustCreatePost(t, db, "Another plain title", "another unrelated body", true)
	if err := assoc.AttachTags(byTag.ID, []string{tagName}); err != nil {
		t.Fatalf("AttachTags: %v", err)
	}

	results, err := search.Search(token, false, 100, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results: got %d, want 3", len(results))
	}

	tiers := map[int64]int{}
	for _, r := range results {
		tiers[r.ID] = r.Tier
	}
	if tiers[byContent.ID] != 1 {
		t.Errorf("content match tier: got %d, want 1", tiers[byContent.ID])
	}
	if tiers[byTitle.ID] != 2 {
		t.Errorf("title match tier: got %d, want 2", tiers[byTitle.ID])
	}
	if tiers[byTag.ID] != 3 {
		t.Errorf("tag match tier: got %d, want 3", tiers[byTag.ID])
	}

	// Ranking: tier 1 before tier 2 before tier 3.
	for i := 1; i < len(results); i++ {
		if results[i].Tier < results[i-1].Tier {
			t.Errorf("results out of tier order at %d: %d after %d",
				i, results[i].Tier, results[i-1].Tier)
		}
	}
}

func TestSearchEachPostOnce(t *testing.T) {
	db := testDB(t)
	search := NewSearchStore(db, "english")
	assoc := NewAssociationStore(db)

	token := searchToken()
	t.Cleanup(func() { cleanTag(t, db, token) })

	// Matches in content, title, and tag name at once. It must surface
	// exactly once, attributed to the content tier.
	post := mustCreatePost(t, db, "Triple "+token, "body also says "+token, true)
	if err := assoc.AttachTags(post.ID, []string{token}); err != nil {
		t.Fatalf("AttachTags: %v", err)
	}

	results, err := search.Search(token, false, 100, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results: got %d, want 1", len(results))
	}
	if results[0].ID != post.ID || results[0].Tier != 1 {
		t.Errorf("got id=%d tier=%d, want id=%d tier=1",
			results[0].ID, results[0].Tier, post.ID)
	}

	count, err := search.Count(token, false)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("count: got %d, want 1", count)
	}
}

func TestSearchDraftVisibility(t *testing.T) {
	db := testDB(t)
	search := NewSearchStore(db, "english")

	token := searchToken()
	mustCreatePost(t, db, "Draft title", "draft body with "+token, false)

	public, err := search.Search(token, false, 100, 0)
	if err != nil {
		t.Fatalf("Search (public): %v", err)
	}
	if len(public) != 0 {
		t.Errorf("draft leaked to public search: %d results", len(public))
	}

	admin, err := search.Search(token, true, 100, 0)
	if err != nil {
		t.Fatalf("Search (admin): %v", err)
	}
	if len(admin) != 1 {
		t.Errorf("admin search results: got %d, want 1", len(admin))
	}
}

func TestSearchStemming(t *testing.T) {
	db := testDB(t)
	search := NewSearchStore(db, "english")

	token := searchToken()
	post := mustCreatePost(t, db, "Stemming fixture",
		"The "+token+" servers were running yesterday", true)

	// "run" should match "running" via stemming, not substring equality.
	results, err := search.Search(token+" run", false, 100, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	var found bool
	for _, r := range results {
		if r.ID == post.ID {
			found = true
		}
	}
	if !found {
		t.Error("stemmed query did not match")
	}
}

func TestSearchNoResults(t *testing.T) {
	db := testDB(t)
	search := NewSearchStore(db, "english")

	results, err := search.Search(searchToken(), false, 100, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}

	count, err := search.Count(searchToken(), false)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("count: got %d, want 0", count)
	}
}
