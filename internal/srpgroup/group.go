// Package srpgroup holds the finite cyclic group parameters shared by every
// modular exponentiation in the password-verifier exchange. Groups are loaded
// once at startup and treated as immutable afterwards.
package srpgroup

import (
	"fmt"
	"math/big"
)

// MinModulusBits is the smallest modulus size accepted at startup. Anything
// below this is trivially brute-forced and refused outright.
const MinModulusBits = 2048

// primeCertainty is the number of Miller-Rabin rounds used when validating a
// modulus. 2^-64 error probability is far beyond what an attacker can exploit.
const primeCertainty = 32

// Group is an immutable (N, g) pair. N is a large safe prime and g a generator
// modulo N, per RFC 5054 Appendix A.
type Group struct {
	Name string
	N    *big.Int
	G    *big.Int
}

var groups = map[string]*Group{}

func register(name, nHex string, g int64) {
	n, ok := new(big.Int).SetString(nHex, 16)
	if !ok {
		panic("srpgroup: malformed modulus for " + name)
	}
	groups[name] = &Group{Name: name, N: n, G: big.NewInt(g)}
}

func init() {
	// RFC 5054 Appendix A, 2048-bit group.
	register("rfc5054.2048",
		"AC6BDB41324A9A9BF166DE5E1389582FAF72B6651987EE07FC3192943DB56050"+
			"A37329CBB4A099ED8193E0757767A13DD52312AB4B03310DCD7F48A9DA04FD50"+
			"E8083969EDB767B0CF6095179A163AB3661A05FBD5FAAAE82918A9962F0B93B8"+
			"55F97993EC975EEAA80D740ADBF4FF747359D041D5C33EA71D281E446B14773B"+
			"CA97B43A23FB801676BD207A436C6481F1D2B9078717461A5B9D32E688F87748"+
			"544523B524B0D57D5EA77A2775D2ECFA032CFBDBF52FB3786160279004E57AE6"+
			"AF874E7303CE53299CCC041C7BC308D82A5698F3A8D0C38271AE35F8E9DBFBB6"+
			"94B5C803D89F7AE435DE236D525F54759B65E372FCD68EF20FA7111F9E4AFF73",
		2)
	// RFC 5054 Appendix A, 3072-bit group.
	register("rfc5054.3072",
		"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74"+
			"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437"+
			"4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED"+
			"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05"+
			"98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB"+
			"9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B"+
			"E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718"+
			"3995497CEA956AE515D2261898FA051015728E5A8AAAC42DAD33170D04507A33"+
			"A85521ABDF1CBA64ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7"+
			"ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6BF12FFA06D98A0864"+
			"D87602733EC86A64521F2B18177B200CBBE117577A615D6C770988C0BAD946E2"+
			"08E24FA074E5AB3143DB5BFCE0FD108E4B82D120A93AD2CAFFFFFFFFFFFFFFFF",
		5)
	// RFC 5054 Appendix A, 4096-bit group.
	register("rfc5054.4096",
		"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74"+
			"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437"+
			"4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED"+
			"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05"+
			"98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB"+
			"9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B"+
			"E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718"+
			"3995497CEA956AE515D2261898FA051015728E5A8AAAC42DAD33170D04507A33"+
			"A85521ABDF1CBA64ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7"+
			"ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6BF12FFA06D98A0864"+
			"D87602733EC86A64521F2B18177B200CBBE117577A615D6C770988C0BAD946E2"+
			"08E24FA074E5AB3143DB5BFCE0FD108E4B82D120A92108011A723C12A787E6D7"+
			"88719A10BDBA5B2699C327186AF4E23C1A946834B6150BDA2583E9CA2AD44CE8"+
			"DBBBC2DB04DE8EF92E8EFC141FBECAA6287C59474E6BC05D99B2964FA090C3A2"+
			"233BA186515BE7ED1F612970CEE2D7AFB81BDD762170481CD0069127D5B05AA9"+
			"93B4EA988D8FDDC186FFB7DC90A6C08F4DF435C934063199FFFFFFFFFFFFFFFF",
		5)
}

// Get returns the named group after validating it. The supported names are:
//
//	rfc5054.2048
//	rfc5054.3072
//	rfc5054.4096
func Get(name string) (*Group, error) {
	grp, ok := groups[name]
	if !ok {
		return nil, fmt.Errorf("unknown SRP group %q", name)
	}
	if err := grp.Validate(); err != nil {
		return nil, fmt.Errorf("group %q failed validation: %w", name, err)
	}
	return grp, nil
}

// Validate checks that the modulus is a prime of adequate size and that the
// generator lies in [2, N-1]. Called once at startup; a group that fails here
// must never be used.
func (grp *Group) Validate() error {
	if grp.N == nil || grp.G == nil {
		return fmt.Errorf("modulus and generator must be set")
	}
	if grp.N.BitLen() < MinModulusBits {
		return fmt.Errorf("modulus is %d bits, need at least %d", grp.N.BitLen(), MinModulusBits)
	}
	if !grp.N.ProbablyPrime(primeCertainty) {
		return fmt.Errorf("modulus is not prime")
	}
	two := big.NewInt(2)
	if grp.G.Cmp(two) < 0 || grp.G.Cmp(grp.N) >= 0 {
		return fmt.Errorf("generator must be in [2, N-1]")
	}
	return nil
}

// ByteLen returns the fixed width, in bytes, used for canonical big-endian
// encodings of group elements.
func (grp *Group) ByteLen() int {
	return (grp.N.BitLen() + 7) / 8
}

// Pad encodes x as a fixed-width big-endian byte string of the group's byte
// length. Both sides of the exchange must hash the same canonical encoding,
// so no variable-width representation is ever hashed.
func (grp *Group) Pad(x *big.Int) []byte {
	return x.FillBytes(make([]byte, grp.ByteLen()))
}
