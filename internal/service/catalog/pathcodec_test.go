package catalog

import (
	"reflect"
	"testing"
)

func TestJoinPath(t *testing.T) {
	tests := []struct {
		name       string
		parentPath string
		child      string
		want       string
	}{
		{
			name:       "root level folder",
			parentPath: "",
			child:      "Test Folder",
			want:       "/Test Folder",
		},
		{
			name:       "explicit root parent",
			parentPath: "/",
			child:      "Test Folder",
			want:       "/Test Folder",
		},
		{
			name:       "nested folder",
			parentPath: "/Test Folder",
			child:      "Subfolder",
			want:       "/Test Folder/Subfolder",
		},
		{
			name:       "deeply nested",
			parentPath: "/a/b/c",
			child:      "d",
			want:       "/a/b/c/d",
		},
		{
			name:       "parent with trailing slash",
			parentPath: "/a/",
			child:      "b",
			want:       "/a/b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoinPath(tt.parentPath, tt.child)
			if got != tt.want {
				t.Errorf("JoinPath(%q, %q) = %q, want %q", tt.parentPath, tt.child, got, tt.want)
			}
		})
	}
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "root level", path: "/a", want: ""},
		{name: "one level deep", path: "/a/b", want: "/a"},
		{name: "two levels deep", path: "/a/b/c", want: "/a/b"},
		{name: "no slash at all", path: "a", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParentPath(tt.path); got != tt.want {
				t.Errorf("ParentPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLastSegment(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "root level", path: "/a", want: "a"},
		{name: "nested", path: "/a/b/c", want: "c"},
		{name: "bare name", path: "report.pdf", want: "report.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LastSegment(tt.path); got != tt.want {
				t.Errorf("LastSegment(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// Round-trip invariant: splitting a path into parent and leaf and joining
// them again must reproduce the original path.
func TestJoinParentRoundTrip(t *testing.T) {
	paths := []string{
		"/a",
		"/a/b",
		"/Test Folder/Subfolder",
		"/x/y/z/report.pdf",
	}

	for _, p := range paths {
		if got := JoinPath(ParentPath(p), LastSegment(p)); got != p {
			t.Errorf("JoinPath(ParentPath, LastSegment) round trip of %q = %q", p, got)
		}
	}
}

func TestSplitSegments(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "simple", path: "/a/b", want: []string{"a", "b"}},
		{name: "duplicate slashes", path: "/a//b/", want: []string{"a", "b"}},
		{name: "no leading slash", path: "a/b", want: []string{"a", "b"}},
		{name: "root", path: "/", want: nil},
		{name: "empty", path: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSegments(tt.path)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSegments(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
