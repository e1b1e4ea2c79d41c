package service

import (
	"fmt"
	"strings"

	"product_service_backend/internal/product/domain"
)

// Rule names, used to attribute rejections in logs and metrics.
const (
	RuleNonNegativeBalance  = "non_negative_balance"
	RulePymeCurrentAccount  = "pyme_current_account"
	RuleVipSavings          = "vip_savings"
	RuleBusinessRestricted  = "business_restricted_subtypes"
	RuleLiabilityUniqueness = "liability_uniqueness"
	RuleSinglePersonalCred  = "single_personal_credit"
	RuleOverdueDebt         = "overdue_debt"
)

// Result is the outcome of an eligibility evaluation.
type Result struct {
	Approved bool
	Rule     string // rejecting rule, empty when approved
	Reason   string // human-readable rejection reason
}

func approved() Result {
	return Result{Approved: true}
}

func rejected(rule, reason string) Result {
	return Result{Rule: rule, Reason: reason}
}

// rule inspects a candidate and either settles the evaluation or passes it on
// to the next rule. A nil result means the rule has no opinion.
type rule struct {
	name  string
	check func(p *domain.Product, client domain.ClientProfile, existing []domain.Product) *Result
}

// Engine evaluates the ordered eligibility rules for product creation. Rules
// run in a fixed order and the first one that settles the outcome wins; later
// rules never run. The engine only reads transient copies of store state; the
// one mutation it performs is the PYME maintenance-fee waiver on the
// candidate itself.
type Engine struct {
	rules []rule
}

// NewEngine creates the engine with the production rule order.
func NewEngine() *Engine {
	return &Engine{rules: []rule{
		{RuleNonNegativeBalance, checkNonNegativeBalance},
		{RulePymeCurrentAccount, checkPymeCurrentAccount},
		{RuleVipSavings, checkVipSavings},
		{RuleBusinessRestricted, checkBusinessRestricted},
		{RuleLiabilityUniqueness, checkLiabilityUniqueness},
		{RuleSinglePersonalCred, checkSinglePersonalCredit},
	}}
}

// Evaluate runs the rules against a candidate product, the owning client's
// profile, and the client's existing products. Approval is the default when
// no rule objects.
func (e *Engine) Evaluate(candidate *domain.Product, client domain.ClientProfile, existing []domain.Product) Result {
	for _, r := range e.rules {
		if res := r.check(candidate, client, existing); res != nil {
			return *res
		}
	}
	return approved()
}

// An explicitly provided negative opening balance is rejected for every
// client type.
func checkNonNegativeBalance(p *domain.Product, _ domain.ClientProfile, _ []domain.Product) *Result {
	if p.Balance != nil && *p.Balance < 0 {
		res := rejected(RuleNonNegativeBalance, "initial balance cannot be negative")
		return &res
	}
	return nil
}

// PYME business clients open current accounts with the maintenance fee
// waived, but only once they hold a credit card.
func checkPymeCurrentAccount(p *domain.Product, client domain.ClientProfile, existing []domain.Product) *Result {
	if !client.IsBusiness() || !client.HasSubtype(domain.ClientSubtypePYME) || p.Subtype != domain.SubtypeCurrentAccount {
		return nil
	}
	if !hasSubtype(existing, domain.SubtypeCreditCard) {
		res := rejected(RulePymeCurrentAccount, "pyme client requires a credit card to open a current account")
		return &res
	}
	fee := 0.0
	p.MaintenanceFee = &fee
	res := approved()
	return &res
}

// VIP personal clients need a credit card before opening a savings account.
func checkVipSavings(p *domain.Product, client domain.ClientProfile, existing []domain.Product) *Result {
	if !client.IsPersonal() || !client.HasSubtype(domain.ClientSubtypeVIP) || p.Subtype != domain.SubtypeSavings {
		return nil
	}
	if !hasSubtype(existing, domain.SubtypeCreditCard) {
		res := rejected(RuleVipSavings, "vip client requires a credit card to open a savings account")
		return &res
	}
	res := approved()
	return &res
}

// Business clients cannot hold savings or fixed-term accounts.
func checkBusinessRestricted(p *domain.Product, client domain.ClientProfile, _ []domain.Product) *Result {
	if client.IsBusiness() && (p.Subtype == domain.SubtypeSavings || p.Subtype == domain.SubtypeFixedTerm) {
		res := rejected(RuleBusinessRestricted, "business client cannot hold savings or fixed-term accounts")
		return &res
	}
	return nil
}

// Personal clients hold at most one liability product of each subtype.
func checkLiabilityUniqueness(p *domain.Product, client domain.ClientProfile, existing []domain.Product) *Result {
	if !client.IsPersonal() || !p.IsLiability() {
		return nil
	}
	if hasSubtype(existing, p.Subtype) {
		res := rejected(RuleLiabilityUniqueness,
			fmt.Sprintf("client already has a %s account", strings.ToLower(string(p.Subtype))))
		return &res
	}
	return nil
}

// At most one personal credit per client, regardless of client type.
func checkSinglePersonalCredit(p *domain.Product, _ domain.ClientProfile, existing []domain.Product) *Result {
	if p.Subtype != domain.SubtypePersonalCredit {
		return nil
	}
	if hasSubtype(existing, domain.SubtypePersonalCredit) {
		res := rejected(RuleSinglePersonalCred, "client may hold only one personal credit")
		return &res
	}
	return nil
}

func hasSubtype(products []domain.Product, subtype domain.Subtype) bool {
	for _, p := range products {
		if p.Subtype == subtype {
			return true
		}
	}
	return false
}
