// Package command encodes the inline button payloads both bots exchange.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/cardstore/internal/domain"
)

type Kind string

const (
	Menu          Kind = "menu"
	Cards         Kind = "cards"
	Buy           Kind = "buy"
	ConfirmBuy    Kind = "confirm_buy"
	Balance       Kind = "balance"
	History       Kind = "history"
	MyOrders      Kind = "orders"
	PendingOrders Kind = "pending_orders"
	OrderDetails  Kind = "order_details"
	Deliver       Kind = "deliver"
	Complete      Kind = "complete"
	Cancel        Kind = "cancel"
	Stats         Kind = "stats"
	Blacklist     Kind = "blacklist"
)

// needsArg lists every known kind and whether it carries an argument.
var needsArg = map[Kind]bool{
	Menu: false, Cards: false, Buy: true, ConfirmBuy: true, Balance: false, History: false,
	MyOrders: false, PendingOrders: false, OrderDetails: true, Deliver: true, Complete: true,
	Cancel: true, Stats: false, Blacklist: false,
}

// MaxDataLen is the Bot API limit on callback data.
const MaxDataLen = 64

const (
	argSep   = ":"
	fieldSep = "|"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingArg     = errors.New("command argument missing")
	ErrDataTooLong    = errors.New("callback data exceeds 64 bytes")
	ErrBadGroupKey    = errors.New("malformed group key")
)

type Command struct {
	Kind Kind
	Arg  string
}

func New(kind Kind, arg string) Command {
	return Command{Kind: kind, Arg: arg}
}

// Data encodes c as callback data.
func (c Command) Data() (string, error) {
	data := string(c.Kind)
	if c.Arg != "" {
		data += argSep + c.Arg
	}
	if len(data) > MaxDataLen {
		return "", fmt.Errorf("%w: %q", ErrDataTooLong, data)
	}
	return data, nil
}

// MustData is Data for commands whose argument is known to fit.
func (c Command) MustData() string {
	data, err := c.Data()
	if err != nil {
		panic(err)
	}
	return data
}

func ParseCallback(data string) (Command, error) {
	kind, arg, _ := strings.Cut(data, argSep)

	required, ok := needsArg[Kind(kind)]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, kind)
	}
	if required && arg == "" {
		return Command{}, fmt.Errorf("%w: %s", ErrMissingArg, kind)
	}
	return Command{Kind: Kind(kind), Arg: arg}, nil
}

// EncodeGroupKey renders a key as "US|VISA|20".
func EncodeGroupKey(key domain.GroupKey) string {
	return strings.Join([]string{key.CountryCode, key.CardType, key.Price.String()}, fieldSep)
}

func DecodeGroupKey(s string) (domain.GroupKey, error) {
	parts := strings.Split(s, fieldSep)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return domain.GroupKey{}, fmt.Errorf("%w: %q", ErrBadGroupKey, s)
	}
	price, err := decimal.NewFromString(parts[2])
	if err != nil || !price.IsPositive() {
		return domain.GroupKey{}, fmt.Errorf("%w: %q", ErrBadGroupKey, s)
	}
	return domain.GroupKey{CountryCode: parts[0], CardType: parts[1], Price: price}, nil
}
