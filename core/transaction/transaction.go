package transaction

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/commonpot/commonpot-go-node/core/state"
	"github.com/commonpot/commonpot-go-node/core/types"
	"github.com/commonpot/commonpot-go-node/crypto"
	"github.com/tendermint/go-amino"
)

// TxType of transaction is determined by a single byte.
type TxType byte

func (t TxType) String() string {
	return "0x" + hex.EncodeToString([]byte{byte(t)})
}

func (t TxType) UInt64() uint64 {
	return uint64(t)
}

const (
	TypeCreatePot      TxType = 0x01
	TypeAddContributor TxType = 0x02
	TypeContribute     TxType = 0x03
	TypeSignRelease    TxType = 0x04
	TypeReleaseFunds   TxType = 0x05
)

var (
	ErrInvalidSig = errors.New("invalid transaction signature")
)

var cdc = amino.NewCodec()

// Cdc returns the codec used for transaction envelopes and tx data payloads.
func Cdc() *amino.Codec {
	return cdc
}

type Transaction struct {
	Nonce         uint64
	ChainID       types.ChainID
	Type          TxType
	Data          RawData
	Payload       []byte
	ServiceData   []byte
	SignatureData []byte

	decodedData Data
	sender      *types.Address
}

type RawData []byte

type Data interface {
	String() string
	TxType() TxType
	Run(tx *Transaction, context state.Interface, currentBlock uint64, currentTime uint64) Response
}

// unsignedTx is the signing payload: everything but the signature itself.
type unsignedTx struct {
	Nonce       uint64
	ChainID     types.ChainID
	Type        TxType
	Data        RawData
	Payload     []byte
	ServiceData []byte
}

func (tx *Transaction) Serialize() ([]byte, error) {
	return cdc.MarshalBinaryBare(tx)
}

func (tx *Transaction) String() string {
	sender, _ := tx.Sender()

	return fmt.Sprintf("TX nonce:%d from:%s payload:%s data:%s",
		tx.Nonce, sender.String(), tx.Payload, tx.decodedData.String())
}

func (tx *Transaction) Sign(prv *ecdsa.PrivateKey) error {
	h := tx.Hash()
	sig, err := crypto.Sign(h[:], prv)
	if err != nil {
		return err
	}

	tx.SetSignature(sig)

	return nil
}

func (tx *Transaction) SetSignature(sig []byte) {
	tx.SignatureData = sig
	tx.sender = nil
}

func (tx *Transaction) MustSender() types.Address {
	sender, err := tx.Sender()
	if err != nil {
		panic(err)
	}
	return sender
}

func (tx *Transaction) Sender() (types.Address, error) {
	if tx.sender != nil {
		return *tx.sender, nil
	}

	if len(tx.SignatureData) != crypto.SignatureLength {
		return types.Address{}, ErrInvalidSig
	}

	sender, err := crypto.RecoverAddress(tx.Hash(), tx.SignatureData)
	if err != nil {
		return types.Address{}, err
	}

	tx.sender = &sender
	return sender, nil
}

func (tx *Transaction) Hash() types.Hash {
	data, err := cdc.MarshalBinaryBare(&unsignedTx{
		Nonce:       tx.Nonce,
		ChainID:     tx.ChainID,
		Type:        tx.Type,
		Data:        tx.Data,
		Payload:     tx.Payload,
		ServiceData: tx.ServiceData,
	})
	if err != nil {
		panic(err)
	}

	return crypto.Keccak256Hash(data)
}

func (tx *Transaction) SetDecodedData(data Data) {
	tx.decodedData = data
}

func (tx *Transaction) GetDecodedData() Data {
	return tx.decodedData
}
