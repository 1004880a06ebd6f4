package store

import "testing"

func TestTagStoreGetOrCreate(t *testing.T) {
	db := testDB(t)
	s := NewTagStore(db)

	name := uniqueName("tag-goc")
	t.Cleanup(func() { cleanTag(t, db, name) })

	tag, created, err := s.GetOrCreate(name)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !created {
		t.Error("expected created=true on first call")
	}
	if tag.ID == 0 {
		t.Error("expected non-zero id")
	}
	if tag.Name != name {
		t.Errorf("name: got %q, want %q", tag.Name, name)
	}

	// Second call must return the same row, not a duplicate.
	again, created, err := s.GetOrCreate(name)
	if err != nil {
		t.Fatalf("GetOrCreate (second): %v", err)
	}
	if created {
		t.Error("expected created=false on second call")
	}
	if again.ID != tag.ID {
		t.Errorf("id changed: got %d, want %d", again.ID, tag.ID)
	}
}

func TestTagStoreFindByName(t *testing.T) {
	db := testDB(t)
	s := NewTagStore(db)

	name := uniqueName("tag-find")
	t.Cleanup(func() { cleanTag(t, db, name) })

	tag, err := s.FindByName(name)
	if err != nil {
		t.Fatalf("FindByName (absent): %v", err)
	}
	if tag != nil {
		t.Fatal("expected nil for absent tag")
	}

	created, _, err := s.GetOrCreate(name)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	tag, err = s.FindByName(name)
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if tag == nil || tag.ID != created.ID {
		t.Fatalf("FindByName returned %+v, want id %d", tag, created.ID)
	}
}

func TestTagStoreRename(t *testing.T) {
	db := testDB(t)
	s := NewTagStore(db)

	oldName := uniqueName("tag-old")
	newName := uniqueName("tag-new")
	t.Cleanup(func() {
		cleanTag(t, db, oldName)
		cleanTag(t, db, newName)
	})

	tag, _, err := s.GetOrCreate(oldName)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	found, err := s.Rename(tag.ID, newName)
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}

	renamed, err := s.FindByID(tag.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if renamed.Name != newName {
		t.Errorf("name after rename: got %q, want %q", renamed.Name, newName)
	}

	// Renaming a missing id is a soft miss, not an error.
	found, err = s.Rename(999999999, newName+"-x")
	if err != nil {
		t.Fatalf("Rename (missing): %v", err)
	}
	if found {
		t.Error("expected found=false for missing id")
	}
}

func TestTagStoreRenameKeepsAssociations(t *testing.T) {
	db := testDB(t)
	tags := NewTagStore(db)
	assoc := NewAssociationStore(db)
	posts := NewPostStore(db)

	name := uniqueName("tag-assoc")
	renamed := uniqueName("tag-assoc-renamed")
	t.Cleanup(func() {
		cleanTag(t, db, name)
		cleanTag(t, db, renamed)
	})

	post := mustCreatePost(t, db, "Tag rename fixture", "body", true)
	if err := assoc.AttachTags(post.ID, []string{name}); err != nil {
		t.Fatalf("AttachTags: %v", err)
	}

	tag, err := tags.FindByName(name)
	if err != nil || tag == nil {
		t.Fatalf("FindByName: tag=%v err=%v", tag, err)
	}

	if _, err := tags.Rename(tag.ID, renamed); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	got, err := posts.TagsForPost(post.ID)
	if err != nil {
		t.Fatalf("TagsForPost: %v", err)
	}
	if len(got) != 1 || got[0].Name != renamed {
		t.Fatalf("tags after rename: got %+v, want single %q", got, renamed)
	}
}

func TestTagStoreListWithPostCounts(t *testing.T) {
	db := testDB(t)
	tags := NewTagStore(db)
	assoc := NewAssociationStore(db)

	name := uniqueName("tag-count")
	t.Cleanup(func() { cleanTag(t, db, name) })

	post := mustCreatePost(t, db, "Tag count fixture", "body", true)
	if err := assoc.AttachTags(post.ID, []string{name}); err != nil {
		t.Fatalf("AttachTags: %v", err)
	}

	list, err := tags.ListWithPostCounts(10000)
	if err != nil {
		t.Fatalf("ListWithPostCounts: %v", err)
	}

	var found bool
	for _, tg := range list {
		if tg.Name == name {
			found = true
			if tg.PostCount != 1 {
				t.Errorf("post count: got %d, want 1", tg.PostCount)
			}
		}
	}
	if !found {
		t.Errorf("tag %q not in listing", name)
	}
}
