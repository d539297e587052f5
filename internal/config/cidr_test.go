package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCIDRSubnet(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		prefix  string
		newbits int
		netnum  int
		want    string
		wantErr bool
	}{
		{name: "first quarter", prefix: "10.0.0.0/16", newbits: 2, netnum: 0, want: "10.0.0.0/18"},
		{name: "last quarter", prefix: "10.0.0.0/16", newbits: 2, netnum: 3, want: "10.0.192.0/18"},
		{name: "terraform doc example", prefix: "172.16.0.0/12", newbits: 4, netnum: 2, want: "172.18.0.0/16"},
		{name: "host bits ignored", prefix: "10.0.12.7/16", newbits: 8, netnum: 1, want: "10.0.1.0/24"},
		{name: "zero newbits", prefix: "10.0.0.0/16", newbits: 0, netnum: 0, want: "10.0.0.0/16"},
		{name: "netnum out of range", prefix: "10.0.0.0/16", newbits: 2, netnum: 4, wantErr: true},
		{name: "negative netnum", prefix: "10.0.0.0/16", newbits: 2, netnum: -1, wantErr: true},
		{name: "extension too large", prefix: "10.0.0.0/30", newbits: 4, netnum: 0, wantErr: true},
		{name: "ipv6", prefix: "2001:db8::/32", newbits: 8, netnum: 0, wantErr: true},
		{name: "garbage", prefix: "not-a-cidr", newbits: 1, netnum: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := CIDRSubnet(tt.prefix, tt.newbits, tt.netnum)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubnetLayout(t *testing.T) {
	t.Parallel()

	t.Run("two zones", func(t *testing.T) {
		t.Parallel()
		public, private, err := SubnetLayout("10.0.0.0/16", 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"10.0.0.0/18", "10.0.64.0/18"}, public)
		assert.Equal(t, []string{"10.0.128.0/18", "10.0.192.0/18"}, private)
	})

	t.Run("three zones leave spare space", func(t *testing.T) {
		t.Parallel()
		public, private, err := SubnetLayout("10.0.0.0/16", 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"10.0.0.0/19", "10.0.32.0/19", "10.0.64.0/19"}, public)
		assert.Equal(t, []string{"10.0.96.0/19", "10.0.128.0/19", "10.0.160.0/19"}, private)
	})

	t.Run("no zones", func(t *testing.T) {
		t.Parallel()
		_, _, err := SubnetLayout("10.0.0.0/16", 0)
		assert.Error(t, err)
	})
}

func TestSubnetNewBits(t *testing.T) {
	t.Parallel()
	for azs, want := range map[int]int{0: 0, 1: 1, 2: 2, 3: 3, 4: 3, 5: 4, 6: 4} {
		assert.Equal(t, want, SubnetNewBits(azs), "azs=%d", azs)
	}
}
