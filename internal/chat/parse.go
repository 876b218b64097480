package chat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/cardstore/internal/domain"
)

var ErrBadFormat = errors.New("bad command format")

const (
	addFormat    = "COUNTRY_CODE;COUNTRY_NAME;TYPE;PRICE;VALUE;QUANTITY"
	chargeFormat = "USER_ID AMOUNT [NOTE]"
	blockFormat  = "USER_ID [REASON]"
)

// splitCommand separates "/add@shop_bot args" into "/add" and "args".
func splitCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	name, args, _ := strings.Cut(text, " ")
	name, _, _ = strings.Cut(name, "@")
	return strings.ToLower(name), strings.TrimSpace(args)
}

// parseCardSpec reads "US;United States;VISA;20;25;5".
func parseCardSpec(s string) (domain.CardSpec, int, error) {
	parts := strings.Split(s, ";")
	if len(parts) != 6 {
		return domain.CardSpec{}, 0, fmt.Errorf("%w: expected %s", ErrBadFormat, addFormat)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	price, err := decimal.NewFromString(parts[3])
	if err != nil {
		return domain.CardSpec{}, 0, fmt.Errorf("%w: price %q", ErrBadFormat, parts[3])
	}
	value, err := decimal.NewFromString(parts[4])
	if err != nil {
		return domain.CardSpec{}, 0, fmt.Errorf("%w: value %q", ErrBadFormat, parts[4])
	}
	quantity, err := strconv.Atoi(parts[5])
	if err != nil {
		return domain.CardSpec{}, 0, fmt.Errorf("%w: quantity %q", ErrBadFormat, parts[5])
	}

	return domain.CardSpec{
		CountryCode: parts[0],
		CountryName: parts[1],
		CardType:    parts[2],
		Price:       price,
		Value:       value,
	}, quantity, nil
}

// parseCharge reads "123456 50 USDT deposit".
func parseCharge(s string) (int64, decimal.Decimal, string, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return 0, decimal.Zero, "", fmt.Errorf("%w: expected %s", ErrBadFormat, chargeFormat)
	}
	userID, err := parseUserID(fields[0])
	if err != nil {
		return 0, decimal.Zero, "", err
	}
	amount, err := decimal.NewFromString(fields[1])
	if err != nil || amount.IsZero() {
		return 0, decimal.Zero, "", fmt.Errorf("%w: amount %q", ErrBadFormat, fields[1])
	}
	return userID, amount, strings.Join(fields[2:], " "), nil
}

// parseBlock reads "123456 chargeback".
func parseBlock(s string) (int64, string, error) {
	id, reason, _ := strings.Cut(strings.TrimSpace(s), " ")
	userID, err := parseUserID(id)
	if err != nil {
		return 0, "", err
	}
	return userID, strings.TrimSpace(reason), nil
}

func parseUserID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: user id %q", ErrBadFormat, s)
	}
	return id, nil
}
