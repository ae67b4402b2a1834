package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNewContractFilter tests include and exclude semantics of contract filters.
func TestNewContractFilter(t *testing.T) {
	assert.Nil(t, NewContractFilter(nil, nil))
	assert.Nil(t, NewContractFilter([]string{}, []string{}))
	assert.True(t, NewContractFilter(nil, nil).Accepts("Any", "contracts/Any.sol:Any"))

	tests := []struct {
		name     string
		includes []string
		excludes []string
		contract string
		fqn      string
		expected bool
	}{
		{"include by name", []string{"Token"}, nil, "Token", "contracts/Token.sol:Token", true},
		{"include by fqn", []string{"contracts/Token.sol:Token"}, nil, "Token", "contracts/Token.sol:Token", true},
		{"include misses", []string{"Token"}, nil, "Vault", "contracts/Vault.sol:Vault", false},
		{"exclude by name", nil, []string{"Token"}, "Token", "contracts/Token.sol:Token", false},
		{"exclude by fqn", nil, []string{"contracts/Token.sol:Token"}, "Token", "contracts/Token.sol:Token", false},
		{"exclude misses", nil, []string{"Token"}, "Vault", "contracts/Vault.sol:Vault", true},
		{"include wins over exclude", []string{"Token"}, []string{"Token"}, "Token", "contracts/Token.sol:Token", true},
		{"both lists exclude", []string{"Token"}, []string{"Vault"}, "Vault", "contracts/Vault.sol:Vault", false},
		{"both lists neither", []string{"Token"}, []string{"Vault"}, "Math", "contracts/Math.sol:Math", true},
		{"partial names do not match", []string{"Tok"}, nil, "Token", "contracts/Token.sol:Token", false},
	}
	for _, test := range tests {
		filter := NewContractFilter(test.includes, test.excludes)
		assert.EqualValues(t, test.expected, filter.Accepts(test.contract, test.fqn), test.name)
	}
}
