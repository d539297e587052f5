package config

import (
	"encoding/binary"
	"fmt"
	"net"
)

// CIDRSubnet calculates a subnet address given a network address, a netmask
// size increase, and a subnet number, like Terraform's cidrsubnet function.
//
// Only IPv4 prefixes are supported.
func CIDRSubnet(prefix string, newbits int, netnum int) (string, error) {
	_, network, err := net.ParseCIDR(prefix)
	if err != nil {
		return "", fmt.Errorf("invalid CIDR prefix: %w", err)
	}
	ip4 := network.IP.To4()
	if ip4 == nil {
		return "", fmt.Errorf("only IPv4 addresses are supported, got IPv6: %s", prefix)
	}
	if newbits < 0 {
		return "", fmt.Errorf("prefix extension cannot be negative, got %d", newbits)
	}

	maskSize, totalBits := network.Mask.Size()
	newMaskSize := maskSize + newbits
	if newMaskSize > totalBits {
		return "", fmt.Errorf("prefix extension of %d bits is too large for %s", newbits, prefix)
	}

	maxSubnets := 1 << newbits
	if netnum < 0 || netnum >= maxSubnets {
		return "", fmt.Errorf("subnet number %d out of range for %d subnets", netnum, maxSubnets)
	}

	subnetSize := uint64(1) << (totalBits - newMaskSize)
	// #nosec G115
	addr := ipToUint(ip4) + uint64(netnum)*subnetSize

	return fmt.Sprintf("%s/%d", uintToIP(addr).String(), newMaskSize), nil
}

// SubnetLayout partitions prefix into one public and one private subnet per
// zone. Public subnets take the low indexes, private subnets follow.
func SubnetLayout(prefix string, azs int) (public, private []string, err error) {
	if azs < 1 {
		return nil, nil, fmt.Errorf("at least one availability zone is required, got %d", azs)
	}
	newbits := SubnetNewBits(azs)
	for i := 0; i < azs; i++ {
		cidr, err := CIDRSubnet(prefix, newbits, i)
		if err != nil {
			return nil, nil, fmt.Errorf("public subnet %d: %w", i, err)
		}
		public = append(public, cidr)
	}
	for i := 0; i < azs; i++ {
		cidr, err := CIDRSubnet(prefix, newbits, azs+i)
		if err != nil {
			return nil, nil, fmt.Errorf("private subnet %d: %w", i, err)
		}
		private = append(private, cidr)
	}
	return public, private, nil
}

// ipToUint converts a 4-byte IPv4 address to an integer.
func ipToUint(ip net.IP) uint64 {
	return uint64(binary.BigEndian.Uint32(ip))
}

// uintToIP converts an integer back to an IPv4 address.
func uintToIP(val uint64) net.IP {
	ip := make(net.IP, 4)
	// #nosec G115
	binary.BigEndian.PutUint32(ip, uint32(val))
	return ip
}
