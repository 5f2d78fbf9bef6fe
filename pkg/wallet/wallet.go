package wallet

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

// FuelCoinType is the BIP-44 coin type registered for Fuel.
const FuelCoinType = 1179993420

// DerivationPath builds the standard Fuel account path for an account
// index, e.g. m/44'/1179993420'/0'/0/0.
func DerivationPath(accountIndex int) string {
	return fmt.Sprintf("m/44'/%d'/%d'/0/0", FuelCoinType, accountIndex)
}

// Wallet holds a secp256k1 key derived from a mnemonic phrase.
type Wallet struct {
	priv *btcec.PrivateKey
	path string
}

// FromMnemonic derives a wallet deterministically from a BIP-39 mnemonic
// at the given derivation path.
func FromMnemonic(mnemonic, path string) (*Wallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic phrase")
	}
	seed := bip39.NewSeed(mnemonic, "")

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}

	steps, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	for _, idx := range steps {
		key, err = key.Derive(idx)
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", path, err)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("extract private key: %w", err)
	}

	return &Wallet{priv: priv, path: path}, nil
}

// Address returns the Fuel address of the wallet: the sha256 digest of the
// 64-byte uncompressed public key, hex encoded.
func (w *Wallet) Address() string {
	pub := w.priv.PubKey().SerializeUncompressed()[1:]
	sum := sha256.Sum256(pub)
	return "0x" + hex.EncodeToString(sum[:])
}

func (w *Wallet) Path() string {
	return w.path
}

func parsePath(path string) ([]uint32, error) {
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] != "m" {
		return nil, fmt.Errorf("derivation path must start with m/: %q", path)
	}

	var steps []uint32
	for _, p := range parts[1:] {
		hardened := strings.HasSuffix(p, "'")
		raw := strings.TrimSuffix(p, "'")
		idx, err := strconv.ParseUint(raw, 10, 31)
		if err != nil {
			return nil, fmt.Errorf("derivation path component %q: %w", p, err)
		}
		if hardened {
			idx += hdkeychain.HardenedKeyStart
		}
		steps = append(steps, uint32(idx))
	}
	return steps, nil
}
