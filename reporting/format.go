package reporting

import (
	"github.com/crytic/solinspect/logging/colors"
	"github.com/crytic/solinspect/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultMaxContractSize is the deployed code size limit of EIP-170.
const DefaultMaxContractSize = 24576

// printer formats numbers with thousands separators.
var printer = message.NewPrinter(language.English)

// FormatSize formats a byte count with thousands separators.
func FormatSize(size int) string {
	return printer.Sprintf("%d", size)
}

// FormatPercentage formats part as a whole-number percentage of total, rounding half away from zero. A zero total
// yields "0%".
func FormatPercentage(part int, total int) string {
	if total == 0 {
		return "0%"
	}
	pct := decimal.NewFromInt(int64(part)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(total))).Round(0)
	return pct.String() + "%"
}

// FormatDelta formats the difference between a current and a previous size: an increase in red with a "+" sign, a
// decrease in green with a "-" sign. Returns false if there is no difference.
func FormatDelta(current int, previous int) (string, bool) {
	d := utils.AbsDiff(current, previous)
	switch {
	case current > previous:
		return colors.Red("+" + FormatSize(d)), true
	case current < previous:
		return colors.Green("-" + FormatSize(d)), true
	default:
		return "", false
	}
}

// ColorSize formats a deployed code size, in red if it exceeds maxSize and in yellow if it exceeds 85% of maxSize.
// A non-positive maxSize disables coloring.
func ColorSize(size int, maxSize int) string {
	v := FormatSize(size)
	if maxSize <= 0 {
		return v
	}
	if size > maxSize {
		return colors.Red(v)
	}
	if size*100 > maxSize*85 {
		return colors.Yellow(v)
	}
	return v
}
