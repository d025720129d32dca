package store

// All application state lives under the "bb:" namespace, one key per
// logical collection plus one key per day of ledger entries.
const (
	Prefix = "bb:"

	KeyTargets    = Prefix + "targets"
	KeyFoods      = Prefix + "foods"
	KeyEntryIndex = Prefix + "entryIndex"
	KeyWeights    = Prefix + "weights_lb"
	KeyReminders  = Prefix + "reminders"

	EntryKeyPrefix = Prefix + "entries:"
)

func EntryKey(date string) string {
	return EntryKeyPrefix + date
}
