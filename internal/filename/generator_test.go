package filename

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time { return time.Unix(1700000000, 0) }

func TestTimestampGenerator(t *testing.T) {
	g := &TimestampGenerator{Now: fixedClock}
	pattern := regexp.MustCompile(`^1700000000_[A-Za-z0-9]{8}\.png$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		name, err := g.Generate("diagram.png")
		require.NoError(t, err)
		assert.Regexp(t, pattern, name)
		assert.False(t, seen[name], "names repeat within the same second: %s", name)
		seen[name] = true
	}
}

func TestUUIDGenerator(t *testing.T) {
	g := &UUIDGenerator{Now: fixedClock}
	name, err := g.Generate("scan.JPEG")
	require.NoError(t, err)
	assert.Regexp(t, `^1700000000_[0-9a-f]{32}\.JPEG$`, name)
}

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"photo.png":        "png",
		"archive.tar.bmp":  "bmp",
		"no-extension":     "",
		"dir.name/file":    "",
		"C:/uploads/a.jpg": "jpg",
	}
	for in, want := range cases {
		assert.Equal(t, want, Extension(in), in)
	}

	g := &TimestampGenerator{Now: fixedClock}
	name, err := g.Generate("blob")
	require.NoError(t, err)
	assert.Regexp(t, `^1700000000_[A-Za-z0-9]{8}$`, name)
}

func TestNew(t *testing.T) {
	g, err := New("timestamp")
	require.NoError(t, err)
	assert.IsType(t, &TimestampGenerator{}, g)

	g, err = New("uuid")
	require.NoError(t, err)
	assert.IsType(t, &UUIDGenerator{}, g)

	_, err = New("sequence")
	assert.Error(t, err)
}
