package datastorage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
)

const programLogPrefix = "Program log: "

// Event is one of *AccountCreatedEvent, *AccountEditedEvent or
// *AccountClosedEvent.
type Event interface {
	Name() string
	isEvent()
}

type AccountCreatedEvent struct {
	Account   solana.PublicKey
	Authority solana.PublicKey
	Label     [MaxLabelLength]byte
}

type AccountEditedEvent struct {
	Account    solana.PublicKey
	Authority  solana.PublicKey
	OldDataLen uint64
	NewDataLen uint64
}

type AccountClosedEvent struct {
	Account   solana.PublicKey
	Authority solana.PublicKey
}

func (*AccountCreatedEvent) Name() string { return "NewDataStorageAccountCreated" }
func (*AccountEditedEvent) Name() string  { return "DataStorageAccountEdited" }
func (*AccountClosedEvent) Name() string  { return "DataStorageAccountClosed" }

func (*AccountCreatedEvent) isEvent() {}
func (*AccountEditedEvent) isEvent()  {}
func (*AccountClosedEvent) isEvent()  {}

// LabelString returns the label with its zero padding stripped.
func (e *AccountCreatedEvent) LabelString() string {
	return strings.TrimRight(string(e.Label[:]), "\x00")
}

var (
	eventLineRegexp  = regexp.MustCompile(`^(NewDataStorageAccountCreated|DataStorageAccountEdited|DataStorageAccountClosed) \{ (.*) \}$`)
	eventFieldRegexp = regexp.MustCompile(`(\w+): (\[[^\]]*\]|[^,]+)`)
)

// ParseEvents extracts the program's events from transaction log messages.
// Lines that are not events are skipped.
func ParseEvents(logs []string) ([]Event, error) {
	var events []Event

	for _, line := range logs {
		msg, ok := strings.CutPrefix(line, programLogPrefix)
		if !ok {
			continue
		}

		match := eventLineRegexp.FindStringSubmatch(msg)
		if match == nil {
			continue
		}

		fields := make(map[string]string)
		for _, f := range eventFieldRegexp.FindAllStringSubmatch(match[2], -1) {
			fields[f[1]] = strings.TrimSpace(f[2])
		}

		event, err := parseEvent(match[1], fields)
		if err != nil {
			return nil, fmt.Errorf("malformed %s event: %w", match[1], err)
		}
		events = append(events, event)
	}

	return events, nil
}

func parseEvent(name string, fields map[string]string) (Event, error) {
	account, err := pubkeyField(fields, "data_storage_account")
	if err != nil {
		return nil, err
	}

	authority, err := pubkeyField(fields, "authority_account")
	if err != nil {
		return nil, err
	}

	switch name {
	case "NewDataStorageAccountCreated":
		label, err := labelField(fields, "account_label")
		if err != nil {
			return nil, err
		}
		return &AccountCreatedEvent{Account: account, Authority: authority, Label: label}, nil
	case "DataStorageAccountEdited":
		oldLen, err := uintField(fields, "old_data_len")
		if err != nil {
			return nil, err
		}
		newLen, err := uintField(fields, "new_data_len")
		if err != nil {
			return nil, err
		}
		return &AccountEditedEvent{Account: account, Authority: authority, OldDataLen: oldLen, NewDataLen: newLen}, nil
	case "DataStorageAccountClosed":
		return &AccountClosedEvent{Account: account, Authority: authority}, nil
	}

	return nil, fmt.Errorf("unknown event %s", name)
}

func pubkeyField(fields map[string]string, key string) (solana.PublicKey, error) {
	v, ok := fields[key]
	if !ok {
		return solana.PublicKey{}, fmt.Errorf("missing field %s", key)
	}
	return solana.PublicKeyFromBase58(v)
}

func uintField(fields map[string]string, key string) (uint64, error) {
	v, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("missing field %s", key)
	}
	return strconv.ParseUint(v, 10, 64)
}

func labelField(fields map[string]string, key string) ([MaxLabelLength]byte, error) {
	var label [MaxLabelLength]byte

	v, ok := fields[key]
	if !ok {
		return label, fmt.Errorf("missing field %s", key)
	}

	elems := strings.Split(strings.Trim(v, "[]"), ",")
	if len(elems) != MaxLabelLength {
		return label, fmt.Errorf("label has %d bytes, expected %d", len(elems), MaxLabelLength)
	}

	for i, elem := range elems {
		b, err := strconv.ParseUint(strings.TrimSpace(elem), 10, 8)
		if err != nil {
			return label, err
		}
		label[i] = byte(b)
	}

	return label, nil
}
