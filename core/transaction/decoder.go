package transaction

import (
	"errors"
	"fmt"
)

func GetData(txType TxType) (Data, bool) {
	switch txType {
	case TypeCreatePot:
		return &CreatePotData{}, true
	case TypeAddContributor:
		return &AddContributorData{}, true
	case TypeContribute:
		return &ContributeData{}, true
	case TypeSignRelease:
		return &SignReleaseData{}, true
	case TypeReleaseFunds:
		return &ReleaseFundsData{}, true
	default:
		return nil, false
	}
}

func (e *Executor) DecodeFromBytes(buf []byte) (*Transaction, error) {
	tx, err := e.DecodeFromBytesWithoutSig(buf)
	if err != nil {
		return nil, err
	}

	if len(tx.SignatureData) == 0 {
		return nil, errors.New("missing signature")
	}

	return tx, nil
}

func (e *Executor) DecodeFromBytesWithoutSig(buf []byte) (*Transaction, error) {
	var tx Transaction
	err := cdc.UnmarshalBinaryBare(buf, &tx)
	if err != nil {
		return nil, err
	}

	if tx.Data == nil {
		return nil, errors.New("incorrect tx data")
	}

	d, ok := e.decodeTxFunc(tx.Type)
	if !ok {
		return nil, fmt.Errorf("tx type %x is not registered", tx.Type)
	}

	err = cdc.UnmarshalBinaryBare(tx.Data, d)
	if err != nil {
		return nil, err
	}

	tx.SetDecodedData(d)

	return &tx, nil
}
