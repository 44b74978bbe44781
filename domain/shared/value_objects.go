package shared

import (
	"errors"
	"fmt"
)

// CurrencyCNY 默认币种，金额以分存储
const CurrencyCNY = "CNY"

// Money 值对象 - 表示金额
type Money struct {
	amount   int64  // 以最小货币单位存储（分）
	currency string // 货币代码
}

// NewMoney 创建新的Money值对象
func NewMoney(amount int64, currency string) Money {
	return Money{
		amount:   amount,
		currency: currency,
	}
}

// Fen 以人民币分创建金额
func Fen(amount int64) Money {
	return NewMoney(amount, CurrencyCNY)
}

// Amount 获取金额数量
func (m Money) Amount() int64 {
	return m.amount
}

// Currency 获取货币类型
func (m Money) Currency() string {
	return m.currency
}

// Add 金额相加，返回新的Money值对象
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errors.New("cannot add money with different currencies")
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract 金额相减，返回新的Money值对象
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errors.New("cannot subtract money with different currencies")
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// Multiply 金额乘以数量
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errors.New("quantity cannot be negative")
	}
	if quantity > 0 && m.amount > (1<<62)/int64(quantity) {
		return Money{}, errors.New("money overflow")
	}
	return Money{amount: m.amount * int64(quantity), currency: m.currency}, nil
}

// IsNegative 是否为负数
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// IsGreaterThanOrEqual 比较金额是否大于或等于另一个金额
func (m Money) IsGreaterThanOrEqual(other Money) bool {
	return m.amount >= other.amount
}

// Equals 比较两个Money值对象是否相等
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// Yuan 格式化为元，如 12.50
func (m Money) Yuan() string {
	sign := ""
	amount := m.amount
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
