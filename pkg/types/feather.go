package types

// GrantCategory is the free-form reason tag of a feather grant. The constants
// below are the categories the app awards itself; any non-empty string is accepted.
type GrantCategory = string

const (
	GrantCategoryTaskCompletion GrantCategory = "task_completion"
	GrantCategoryDailyCheckin   GrantCategory = "daily_checkin"
	GrantCategoryReflection     GrantCategory = "reflection"
	GrantCategoryBonus          GrantCategory = "bonus"
)
