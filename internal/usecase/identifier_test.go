package usecase_test

import (
	"net/http"
	"testing"

	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	cases := []struct {
		raw    string
		wantID int64
		byID   bool
		name   string
	}{
		{raw: "12", wantID: 12, byID: true},
		{raw: " 7 ", wantID: 7, byID: true},
		{raw: "+3", wantID: 3, byID: true},
		{raw: "Tools", name: "Tools"},
		{raw: "12abc", name: "12abc"},
		{raw: "99999999999999999999", name: "99999999999999999999"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			ident, err := usecase.ParseIdentifier(tc.raw)
			require.NoError(t, err)

			id, isID := ident.ID()
			assert.Equal(t, tc.byID, isID)
			if tc.byID {
				assert.Equal(t, tc.wantID, id)
				return
			}
			name, isName := ident.Name()
			assert.True(t, isName)
			assert.Equal(t, tc.name, name)
		})
	}
}

func TestParseIdentifier_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "0", "-4"} {
		_, err := usecase.ParseIdentifier(raw)
		require.Error(t, err, raw)
		assert.ErrorIs(t, err, usecase.ErrInvalidArgument)

		he, ok := usecase.AsHTTPError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Status)
		assert.Equal(t, "identifier", he.Param)
	}
}

func TestIdentifier_String(t *testing.T) {
	assert.Equal(t, "id:5", usecase.ByID(5).String())
	assert.Equal(t, "name:Tools", usecase.ByName("Tools").String())
}
