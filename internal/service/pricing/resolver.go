package pricing

import (
	"errors"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/shopspring/decimal"
)

// ErrNoPriceRule is returned under PolicyStrict when neither the class nor
// the course catalog yields a price for a session.
var ErrNoPriceRule = errors.New("no price rule matches class")

// Policy controls how an unresolvable price is treated.
type Policy string

const (
	// PolicyLenient resolves missing prices to 0; sessions are still
	// counted but contribute no revenue. Callers treat a 0-price invoice
	// line as a data-quality signal, not a failure.
	PolicyLenient Policy = "lenient"
	// PolicyStrict makes aggregation fail when a session has no
	// resolvable price.
	PolicyStrict Policy = "strict"
)

// DefaultSubjectAliases maps display labels to catalog subject values. The
// front desk historically entered the label form; the course catalog stores
// the value form.
var DefaultSubjectAliases = map[string]string{
	"Toán":       "math",
	"Ngữ Văn":    "literature",
	"Văn":        "literature",
	"Tiếng Anh":  "english",
	"Anh":        "english",
	"Vật Lý":     "physics",
	"Lý":         "physics",
	"Hóa Học":    "chemistry",
	"Hóa":        "chemistry",
	"Sinh Học":   "biology",
	"Sinh":       "biology",
	"Tin Học":    "informatics",
	"Lịch Sử":    "history",
	"Địa Lý":     "geography",
	"Luyện Thi":  "exam_prep",
	"Tiểu Học":   "primary",
}

type Resolver struct {
	aliases map[string]string
	policy  Policy
}

func NewResolver(aliases map[string]string, policy Policy) *Resolver {
	if aliases == nil {
		aliases = DefaultSubjectAliases
	}
	if policy == "" {
		policy = PolicyLenient
	}
	return &Resolver{aliases: aliases, policy: policy}
}

func (r *Resolver) Policy() Policy {
	return r.policy
}

// ResolvePrice returns the effective per-session tuition for a class.
// Precedence: explicit class price, then a course template matching the
// class's grade and subject (directly or through the alias table), else 0.
func (r *Resolver) ResolvePrice(c class.Class, courses []class.Course) decimal.Decimal {
	price, _ := r.lookup(c, courses)
	return price
}

// SessionPrice resolves the price for one billed attendance record. A
// per-record override wins outright; otherwise the class/course price is
// resolved and the class discount rule applied. Under PolicyStrict a
// session with no matching rule fails instead of pricing at 0.
func (r *Resolver) SessionPrice(override *decimal.Decimal, c class.Class, courses []class.Course) (decimal.Decimal, error) {
	if override != nil {
		return *override, nil
	}
	price, found := r.lookup(c, courses)
	if !found && r.policy == PolicyStrict {
		return decimal.Zero, ErrNoPriceRule
	}
	return ApplyDiscount(price, c.Discount), nil
}

func (r *Resolver) lookup(c class.Class, courses []class.Course) (decimal.Decimal, bool) {
	if c.SessionPrice != nil {
		return *c.SessionPrice, true
	}

	subject := r.normalizeSubject(c.Subject)
	for _, course := range courses {
		if course.Grade != c.Grade {
			continue
		}
		if r.normalizeSubject(course.Subject) == subject {
			return course.Price, true
		}
	}

	return decimal.Zero, false
}

// ApplyDiscount reduces price by the class discount rule: values up to 100
// are a percentage, anything larger an absolute amount. Never negative.
func ApplyDiscount(price, discount decimal.Decimal) decimal.Decimal {
	if !discount.IsPositive() {
		return price
	}

	var result decimal.Decimal
	if discount.LessThanOrEqual(decimal.NewFromInt(100)) {
		pct := decimal.NewFromInt(100).Sub(discount).Div(decimal.NewFromInt(100))
		result = price.Mul(pct)
	} else {
		result = price.Sub(discount)
	}

	if result.IsNegative() {
		return decimal.Zero
	}
	return result
}

func (r *Resolver) normalizeSubject(s string) string {
	if v, ok := r.aliases[s]; ok {
		return v
	}
	return s
}
