// internal/nodeid/address_test.go
package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress_String(t *testing.T) {
	testCases := []struct {
		name        string
		addr        *Address
		expectedStr string
	}{
		{
			name: "absolute path",
			addr: &Address{
				Absolute: true,
				Path:     []PathSegment{NewPrefixedPathSegment("m", "a"), NewPathSegment("b")},
			},
			expectedStr: "/m:a/b",
		},
		{
			name: "descendant path",
			addr: &Address{
				Path: []PathSegment{NewPathSegment("a"), NewPrefixedPathSegment("x", "b")},
			},
			expectedStr: "a/x:b",
		},
		{
			name:        "nil address",
			addr:        nil,
			expectedStr: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStr, tc.addr.String())
		})
	}
}

func TestAddress_RoundTrip(t *testing.T) {
	testIDs := []string{
		"/m:a/m:b/m:c",
		"/if:interfaces/if:interface/ip:ipv4",
		"config/ipv4",
	}

	for _, id := range testIDs {
		t.Run(id, func(t *testing.T) {
			addr, err := Parse(id)
			require.NoError(t, err)

			roundTripID := addr.String()
			assert.Equal(t, id, roundTripID)

			roundTripAddr, err := Parse(roundTripID)
			require.NoError(t, err)
			assert.True(t, addr.Equal(roundTripAddr))
		})
	}
}

func TestAddress_Equal(t *testing.T) {
	addr1, _ := Parse("/m:a/b")
	addr2, _ := Parse("/m:a/b")
	addr3, _ := Parse("/m:a/c")
	addr4, _ := Parse("m:a/b")
	addr5, _ := Parse("/x:a/b")

	assert.True(t, addr1.Equal(addr2))
	assert.False(t, addr1.Equal(addr3))
	assert.False(t, addr1.Equal(addr4), "absolute and descendant paths differ")
	assert.False(t, addr1.Equal(addr5))
	assert.False(t, addr1.Equal(nil))
	assert.False(t, (*Address)(nil).Equal(addr1))
	assert.True(t, (*Address)(nil).Equal(nil))
}

func TestAddress_Names(t *testing.T) {
	addr, err := Parse("/if:interfaces/if:interface/ip:ipv4")
	require.NoError(t, err)

	assert.Equal(t, []string{"interfaces", "interface", "ipv4"}, addr.Names())
	assert.Nil(t, (*Address)(nil).Names())
}
