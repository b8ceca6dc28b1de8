// Package validator defines the checks that forms attach to their fields and
// groups, and the Outcome values those checks produce.
//
// A check never returns an error for bad input. It returns an Outcome: nil
// when the value is acceptable, or a map from error code to payload when it is
// not. Codes are stable strings ("required", "toDateIsPreviousThanFromDate",
// "nicknameAlreadyExists") that consumers map to messages.
//
// # Building blocks
//
//   - Validator       – synchronous check with a stable ID
//   - AsyncValidator  – slow check with a settle delay, run by the form's debouncer
//   - WarningRule     – informational hints that never affect validity
//   - Control         – read-only snapshot of the node being validated
//   - ValidationError – path-keyed failure used when a submit is rejected
//
// The ID on every check is its identity: forms use it to make attaching the
// same check twice a no-op and to let a parent ask whether a child already
// carries a given rule.
//
// # Usage
//
//	period := form.NewGroup("period", children,
//	    form.WithGroupValidators(validator.DateOrder("fromDate", "toDate")),
//	)
//	nickname := form.NewField("nickname", "",
//	    form.WithValidators(validator.Required()),
//	    form.WithAsyncValidators(validator.Uniqueness("nickname", lookup, 100*time.Millisecond)),
//	)
//
// # Faults
//
// Safe, SafeWarning and RunAsync turn a panicking check into an
// ErrValidatorFault error. The form logs the fault, counts it and treats the
// check as passing, so a broken rule never blocks the user.
package validator
