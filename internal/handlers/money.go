package handlers

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MoneyFormatter renders amounts for user-facing messages, e.g. "R$ 25,00" for BRL in pt-BR.
type MoneyFormatter struct {
	unit    currency.Unit
	printer *message.Printer
}

func NewMoneyFormatter(code string, lang language.Tag) (*MoneyFormatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("currency %q: %w", code, err)
	}
	return &MoneyFormatter{unit: unit, printer: message.NewPrinter(lang)}, nil
}

func (m *MoneyFormatter) Format(amount decimal.Decimal) string {
	return m.printer.Sprint(currency.Symbol(m.unit.Amount(amount.Round(2).InexactFloat64())))
}
