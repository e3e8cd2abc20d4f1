package chardet_test

import (
	"testing"

	"github.com/fwojciec/mdparse"
	"github.com/fwojciec/mdparse/chardet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

// Ensure Decoder implements mdparse.Decoder at compile time.
var _ mdparse.Decoder = (*chardet.Decoder)(nil)

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	t.Run("passes UTF-8 through", func(t *testing.T) {
		t.Parallel()

		text, enc, err := chardet.NewDecoder().Decode([]byte("# Café\n"))

		require.NoError(t, err)
		assert.Equal(t, "# Café\n", text)
		assert.Equal(t, "UTF-8", enc)
	})

	t.Run("strips UTF-8 byte order mark", func(t *testing.T) {
		t.Parallel()

		text, _, err := chardet.NewDecoder().Decode([]byte("\xEF\xBB\xBF# Title"))

		require.NoError(t, err)
		assert.Equal(t, "# Title", text)
	})

	t.Run("decodes Latin-1 text", func(t *testing.T) {
		t.Parallel()

		source := "# Résumé\n\nLe café était très fréquenté. Les élèves déjà présents préféraient " +
			"la crème brûlée à la pâtisserie. Où êtes-vous allés cet été? À la côte, près de la forêt.\n"
		latin1, err := charmap.ISO8859_1.NewEncoder().String(source)
		require.NoError(t, err)

		text, enc, err := chardet.NewDecoder().Decode([]byte(latin1))

		require.NoError(t, err)
		assert.NotEqual(t, "UTF-8", enc)
		assert.Contains(t, text, "café")
		assert.Contains(t, text, "# Résumé")
	})

	t.Run("rejects low confidence detections", func(t *testing.T) {
		t.Parallel()

		_, _, err := chardet.NewDecoder(chardet.WithMinConfidence(101)).Decode([]byte{0xff, 0xfe, 0xfd, 0x80})

		require.Error(t, err)
		assert.Equal(t, mdparse.EINVALID, mdparse.ErrorCode(err))
	})
}
