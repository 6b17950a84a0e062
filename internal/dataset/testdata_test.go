package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleCSV = `Location,Latitude,Longitude,Week 1,Week 2,Week 3,Week 4,Week 5,Week 6,Week 7,Week 8,Week 9
Urbana,40.11,-88.21,5,,7,0,2,NA,1,3,
Peoria,40.69,-89.59,1,2,3,4,5,6,7,8,9
Carbondale,37.73,-89.22,,,,,,,,,4
Nowhere,,,2,2,2,2,2,2,2,2,2
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}
