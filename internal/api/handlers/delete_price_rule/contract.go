package delete_price_rule

import "context"

type PriceRuleService interface {
	Disable(ctx context.Context, ruleID, venueID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
