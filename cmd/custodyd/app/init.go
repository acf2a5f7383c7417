package custodyd

import (
	"encoding/hex"
	"encoding/json"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/token"
)

const (
	// DevLamports is the balance of the development account.
	DevLamports uint64 = 1000000000000
	// DevTokens is the amount held by the development account of each
	// development mint.
	DevTokens uint64 = 1000000
)

// DevMints are created by GenInitOptions, each with a holding of the
// development account.
var DevMints = []string{"alpha", "beta"}

// GenesisState is the app_state section of the genesis file.
type GenesisState struct {
	Conf     GenesisConf            `json:"conf"`
	Wallets  []cash.GenesisAccount  `json:"wallets"`
	Mints    []token.GenesisMint    `json:"mints"`
	Holdings []token.GenesisHolding `json:"holdings"`
}

// GenesisConf holds the configuration of each package.
type GenesisConf struct {
	Cash cash.Configuration `json:"cash"`
}

// DevMint returns the address of a development mint.
func DevMint(name string) custody.Address {
	addr, _ := custody.MustFindDerivedAddress(token.ProgramID, []byte("mint"), []byte(name))
	return addr
}

// GenInitOptions produces the options for one rich development account.
// The account address can be given as the first argument, otherwise a key
// is generated and its seed returned as hex.
func GenInitOptions(args []string) (json.RawMessage, string, error) {
	var (
		owner  custody.Address
		secret string
	)
	if len(args) > 0 {
		addr, err := custody.ParseAddress(args[0])
		if err != nil {
			return nil, "", errors.Wrap(err, "owner address")
		}
		owner = addr
	} else {
		key := crypto.GenPrivKeyEd25519()
		owner = key.PublicKey().Address()
		secret = hex.EncodeToString(key.Seed())
	}

	state := GenesisState{
		Conf:    GenesisConf{Cash: cash.DefaultConfiguration()},
		Wallets: []cash.GenesisAccount{{Address: owner, Lamports: DevLamports}},
	}
	for _, name := range DevMints {
		mint := DevMint(name)
		state.Mints = append(state.Mints, token.GenesisMint{Address: mint, Authority: owner})
		state.Holdings = append(state.Holdings, token.GenesisHolding{Owner: owner, Mint: mint, Amount: DevTokens})
	}

	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrSchema, err.Error())
	}
	return raw, secret, nil
}
