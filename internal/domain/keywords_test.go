package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{
			name:    "drops stop words and short tokens",
			message: "The quick brown fox jumps",
			want:    []string{"quick", "brown", "jumps"},
		},
		{
			name:    "lowercases",
			message: "AMAZING Work On THE Release",
			want:    []string{"amazing", "work", "release"},
		},
		{
			name:    "caps at five keywords in original order",
			message: "alpha bravo charlie delta echo foxtrot golf",
			want:    []string{"alpha", "bravo", "charlie", "delta", "echo"},
		},
		{
			name:    "empty message",
			message: "",
			want:    []string{},
		},
		{
			name:    "only stop words and short tokens",
			message: "the and a to on it is",
			want:    []string{},
		},
		{
			name:    "stop word check runs after lowercasing",
			message: "With great thanks",
			want:    []string{"great", "thanks"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, ExtractKeywords(tt.message))
		})
	}
}
