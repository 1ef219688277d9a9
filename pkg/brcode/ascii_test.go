package brcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldASCII(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ACME STORE", "ACME STORE"},
		{"João", "Joao"},
		{"SÃO PAULO", "SAO PAULO"},
		{"Conceição Araújo", "Conceicao Araujo"},
		{"Pagamento para Zoë", "Pagamento para Zoe"},
		{"Øresund", "Øresund"}, // no decomposition
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldASCII(tt.in))
		})
	}
}

func TestIsASCII(t *testing.T) {
	assert.True(t, IsASCII("Pagamento para Joao"))
	assert.True(t, IsASCII(""))
	assert.False(t, IsASCII("João"))
	assert.False(t, IsASCII("Øresund"))
}
