package code

import (
	"strconv"
)

// Codes for transaction checks and delivers responses
const (
	// general
	OK                           uint32 = 0
	WrongNonce                   uint32 = 101
	TxTooLarge                   uint32 = 105
	DecodeError                  uint32 = 106
	InsufficientFunds            uint32 = 107
	TxPayloadTooLarge            uint32 = 109
	TxServiceDataTooLarge        uint32 = 110
	TxFromSenderAlreadyInMempool uint32 = 113
	WrongChainID                 uint32 = 115

	// pot creation
	PotAlreadyExists       uint32 = 201
	InvalidPotName         uint32 = 202
	InvalidPotDescription  uint32 = 203
	WrongRequiredApprovals uint32 = 204

	// contributor roster
	PotNotFound                uint32 = 301
	Unauthorized               uint32 = 302
	ContributorAlreadyApproved uint32 = 303
	TooManyContributors        uint32 = 304
	NotAnApprovedContributor   uint32 = 305

	// contributions
	InvalidContributionAmount uint32 = 401

	// release
	PotReleased           uint32 = 501
	AlreadySigned         uint32 = 502
	AlreadyReleased       uint32 = 503
	TimeLockNotExpired    uint32 = 504
	InsufficientApprovals uint32 = 505
	TooManyApprovals      uint32 = 506
)

type wrongNonce struct {
	Code          string `json:"code,omitempty"`
	ExpectedNonce string `json:"expected_nonce,omitempty"`
	GotNonce      string `json:"got_nonce,omitempty"`
}

func NewWrongNonce(expectedNonce string, gotNonce string) *wrongNonce {
	return &wrongNonce{Code: strconv.Itoa(int(WrongNonce)), ExpectedNonce: expectedNonce, GotNonce: gotNonce}
}

type txTooLarge struct {
	Code        string `json:"code,omitempty"`
	MaxTxLength string `json:"max_tx_length,omitempty"`
	GotTxLength string `json:"got_tx_length,omitempty"`
}

func NewTxTooLarge(maxTxLength string, gotTxLength string) *txTooLarge {
	return &txTooLarge{Code: strconv.Itoa(int(TxTooLarge)), MaxTxLength: maxTxLength, GotTxLength: gotTxLength}
}

type decodeError struct {
	Code string `json:"code,omitempty"`
}

func NewDecodeError() *decodeError {
	return &decodeError{Code: strconv.Itoa(int(DecodeError))}
}

type insufficientFunds struct {
	Code        string `json:"code,omitempty"`
	Sender      string `json:"sender,omitempty"`
	NeededValue string `json:"needed_value,omitempty"`
}

func NewInsufficientFunds(sender string, neededValue string) *insufficientFunds {
	return &insufficientFunds{Code: strconv.Itoa(int(InsufficientFunds)), Sender: sender, NeededValue: neededValue}
}

type txPayloadTooLarge struct {
	Code             string `json:"code,omitempty"`
	MaxPayloadLength string `json:"max_payload_length,omitempty"`
	GotPayloadLength string `json:"got_payload_length,omitempty"`
}

func NewTxPayloadTooLarge(maxPayloadLength string, gotPayloadLength string) *txPayloadTooLarge {
	return &txPayloadTooLarge{Code: strconv.Itoa(int(TxPayloadTooLarge)), MaxPayloadLength: maxPayloadLength, GotPayloadLength: gotPayloadLength}
}

type txServiceDataTooLarge struct {
	Code                 string `json:"code,omitempty"`
	MaxServiceDataLength string `json:"max_service_data_length,omitempty"`
	GotServiceDataLength string `json:"got_service_data_length,omitempty"`
}

func NewTxServiceDataTooLarge(maxServiceDataLength string, gotServiceDataLength string) *txServiceDataTooLarge {
	return &txServiceDataTooLarge{Code: strconv.Itoa(int(TxServiceDataTooLarge)), MaxServiceDataLength: maxServiceDataLength, GotServiceDataLength: gotServiceDataLength}
}

type txFromSenderAlreadyInMempool struct {
	Code   string `json:"code,omitempty"`
	Sender string `json:"sender,omitempty"`
	Block  string `json:"block,omitempty"`
}

func NewTxFromSenderAlreadyInMempool(sender string, block string) *txFromSenderAlreadyInMempool {
	return &txFromSenderAlreadyInMempool{Code: strconv.Itoa(int(TxFromSenderAlreadyInMempool)), Sender: sender, Block: block}
}

type wrongChainID struct {
	Code           string `json:"code,omitempty"`
	CurrentChainID string `json:"current_chain_id,omitempty"`
	GotChainID     string `json:"got_chain_id,omitempty"`
}

func NewWrongChainID(currentChainID string, gotChainID string) *wrongChainID {
	return &wrongChainID{Code: strconv.Itoa(int(WrongChainID)), CurrentChainID: currentChainID, GotChainID: gotChainID}
}

type potAlreadyExists struct {
	Code       string `json:"code,omitempty"`
	PotAddress string `json:"pot_address,omitempty"`
}

func NewPotAlreadyExists(potAddress string) *potAlreadyExists {
	return &potAlreadyExists{Code: strconv.Itoa(int(PotAlreadyExists)), PotAddress: potAddress}
}

type invalidPotName struct {
	Code          string `json:"code,omitempty"`
	MaxNameLength string `json:"max_name_length,omitempty"`
	GotNameLength string `json:"got_name_length,omitempty"`
}

func NewInvalidPotName(maxNameLength string, gotNameLength string) *invalidPotName {
	return &invalidPotName{Code: strconv.Itoa(int(InvalidPotName)), MaxNameLength: maxNameLength, GotNameLength: gotNameLength}
}

type invalidPotDescription struct {
	Code                 string `json:"code,omitempty"`
	MaxDescriptionLength string `json:"max_description_length,omitempty"`
	GotDescriptionLength string `json:"got_description_length,omitempty"`
}

func NewInvalidPotDescription(maxDescriptionLength string, gotDescriptionLength string) *invalidPotDescription {
	return &invalidPotDescription{Code: strconv.Itoa(int(InvalidPotDescription)), MaxDescriptionLength: maxDescriptionLength, GotDescriptionLength: gotDescriptionLength}
}

type wrongRequiredApprovals struct {
	Code                 string `json:"code,omitempty"`
	MinRequiredApprovals string `json:"min_required_approvals,omitempty"`
	MaxRequiredApprovals string `json:"max_required_approvals,omitempty"`
	GotRequiredApprovals string `json:"got_required_approvals,omitempty"`
}

func NewWrongRequiredApprovals(minRequiredApprovals, maxRequiredApprovals, gotRequiredApprovals string) *wrongRequiredApprovals {
	return &wrongRequiredApprovals{Code: strconv.Itoa(int(WrongRequiredApprovals)), MinRequiredApprovals: minRequiredApprovals, MaxRequiredApprovals: maxRequiredApprovals, GotRequiredApprovals: gotRequiredApprovals}
}

type potNotFound struct {
	Code       string `json:"code,omitempty"`
	PotAddress string `json:"pot_address,omitempty"`
}

func NewPotNotFound(potAddress string) *potNotFound {
	return &potNotFound{Code: strconv.Itoa(int(PotNotFound)), PotAddress: potAddress}
}

type unauthorized struct {
	Code       string `json:"code,omitempty"`
	PotAddress string `json:"pot_address,omitempty"`
	Owner      string `json:"owner,omitempty"`
	Sender     string `json:"sender,omitempty"`
}

func NewUnauthorized(potAddress, owner, sender string) *unauthorized {
	return &unauthorized{Code: strconv.Itoa(int(Unauthorized)), PotAddress: potAddress, Owner: owner, Sender: sender}
}

type contributorAlreadyApproved struct {
	Code        string `json:"code,omitempty"`
	PotAddress  string `json:"pot_address,omitempty"`
	Contributor string `json:"contributor,omitempty"`
}

func NewContributorAlreadyApproved(potAddress, contributor string) *contributorAlreadyApproved {
	return &contributorAlreadyApproved{Code: strconv.Itoa(int(ContributorAlreadyApproved)), PotAddress: potAddress, Contributor: contributor}
}

type tooManyContributors struct {
	Code            string `json:"code,omitempty"`
	PotAddress      string `json:"pot_address,omitempty"`
	MaxContributors string `json:"max_contributors,omitempty"`
}

func NewTooManyContributors(potAddress, maxContributors string) *tooManyContributors {
	return &tooManyContributors{Code: strconv.Itoa(int(TooManyContributors)), PotAddress: potAddress, MaxContributors: maxContributors}
}

type notAnApprovedContributor struct {
	Code       string `json:"code,omitempty"`
	PotAddress string `json:"pot_address,omitempty"`
	Sender     string `json:"sender,omitempty"`
}

func NewNotAnApprovedContributor(potAddress, sender string) *notAnApprovedContributor {
	return &notAnApprovedContributor{Code: strconv.Itoa(int(NotAnApprovedContributor)), PotAddress: potAddress, Sender: sender}
}

type invalidContributionAmount struct {
	Code       string `json:"code,omitempty"`
	PotAddress string `json:"pot_address,omitempty"`
	Amount     string `json:"amount,omitempty"`
}

func NewInvalidContributionAmount(potAddress, amount string) *invalidContributionAmount {
	return &invalidContributionAmount{Code: strconv.Itoa(int(InvalidContributionAmount)), PotAddress: potAddress, Amount: amount}
}

type potReleased struct {
	Code       string `json:"code,omitempty"`
	PotAddress string `json:"pot_address,omitempty"`
}

func NewPotReleased(potAddress string) *potReleased {
	return &potReleased{Code: strconv.Itoa(int(PotReleased)), PotAddress: potAddress}
}

type alreadySigned struct {
	Code       string `json:"code,omitempty"`
	PotAddress string `json:"pot_address,omitempty"`
	Sender     string `json:"sender,omitempty"`
}

func NewAlreadySigned(potAddress, sender string) *alreadySigned {
	return &alreadySigned{Code: strconv.Itoa(int(AlreadySigned)), PotAddress: potAddress, Sender: sender}
}

type alreadyReleased struct {
	Code       string `json:"code,omitempty"`
	PotAddress string `json:"pot_address,omitempty"`
	Recipient  string `json:"recipient,omitempty"`
}

func NewAlreadyReleased(potAddress, recipient string) *alreadyReleased {
	return &alreadyReleased{Code: strconv.Itoa(int(AlreadyReleased)), PotAddress: potAddress, Recipient: recipient}
}

type timeLockNotExpired struct {
	Code        string `json:"code,omitempty"`
	PotAddress  string `json:"pot_address,omitempty"`
	UnlockTime  string `json:"unlock_time,omitempty"`
	CurrentTime string `json:"current_time,omitempty"`
}

func NewTimeLockNotExpired(potAddress, unlockTime, currentTime string) *timeLockNotExpired {
	return &timeLockNotExpired{Code: strconv.Itoa(int(TimeLockNotExpired)), PotAddress: potAddress, UnlockTime: unlockTime, CurrentTime: currentTime}
}

type insufficientApprovals struct {
	Code              string `json:"code,omitempty"`
	PotAddress        string `json:"pot_address,omitempty"`
	RequiredApprovals string `json:"required_approvals,omitempty"`
	GotApprovals      string `json:"got_approvals,omitempty"`
}

func NewInsufficientApprovals(potAddress, requiredApprovals, gotApprovals string) *insufficientApprovals {
	return &insufficientApprovals{Code: strconv.Itoa(int(InsufficientApprovals)), PotAddress: potAddress, RequiredApprovals: requiredApprovals, GotApprovals: gotApprovals}
}

type tooManyApprovals struct {
	Code         string `json:"code,omitempty"`
	PotAddress   string `json:"pot_address,omitempty"`
	MaxApprovals string `json:"max_approvals,omitempty"`
}

func NewTooManyApprovals(potAddress, maxApprovals string) *tooManyApprovals {
	return &tooManyApprovals{Code: strconv.Itoa(int(TooManyApprovals)), PotAddress: potAddress, MaxApprovals: maxApprovals}
}
