package stoplist

import (
	"testing"
)

func TestManagerBasic(t *testing.T) {
	stops := []string{"the", "a", "and"}
	mgr := NewManager(stops)

	if !mgr.IsStop("the") {
		t.Error("'the' should be a stopword")
	}

	if !mgr.IsStop("The") {
		t.Error("Lookup should ignore case")
	}

	if mgr.IsStop("hello") {
		t.Error("'hello' should not be a stopword")
	}

	if tag, _ := mgr.Tag("and"); tag != DefaultTag {
		t.Errorf("Untagged stopword should get %s, got %s", DefaultTag, tag)
	}
}

func TestManagerAddRemove(t *testing.T) {
	mgr := NewManager([]string{"the"})

	mgr.Add("Shall", "MD")

	if tag, ok := mgr.Tag("shall"); !ok || tag != "MD" {
		t.Errorf("Expected 'shall' tagged MD, got %q %v", tag, ok)
	}

	mgr.Remove("shall")

	if mgr.IsStop("shall") {
		t.Error("'shall' should not be stopword after removing")
	}
}

func TestManagerAll(t *testing.T) {
	stops := []string{"the", "a", "and", " ", ""}
	mgr := NewManager(stops)

	all := mgr.All()

	want := []string{"a", "and", "the"}
	if len(all) != len(want) {
		t.Fatalf("Expected %v, got %v", want, all)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, all[i], want[i])
		}
	}
}

func TestEnglish(t *testing.T) {
	mgr := English()

	for word, want := range map[string]string{"the": "DT", "of": "IN", "could": "MD", "their": "PRP$"} {
		if tag, ok := mgr.Tag(word); !ok || tag != want {
			t.Errorf("Tag(%q) = %q, %v; want %q", word, tag, ok, want)
		}
	}
	if mgr.IsStop("graph") {
		t.Error("Content word should not be a stopword")
	}
}
