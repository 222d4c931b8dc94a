package celfunc

import (
	"github.com/cwbudde/go-cel/internal/activation"
	"github.com/cwbudde/go-cel/internal/cerr"
	"github.com/cwbudde/go-cel/internal/types"
)

// registerTimeAccessors installs the Timestamp/Duration accessor family
// (spec.md §4.1) as base-table entries, dispatched as receiver-style calls
// `ts.getHours()` / `ts.getHours(tz)` by the evaluator's member-call
// handling (the receiver is args[0], an optional timezone string is
// args[1]).
func registerTimeAccessors(t map[string]activation.Function) {
	t["getHours"] = timeAccessor(
		func(ts types.Timestamp, tz string) (types.Int, *cerr.Error) { return ts.GetHours(tz) },
		func(d types.Duration) types.Int { return d.GetHours() },
	)
	t["getMinutes"] = timeAccessor(
		func(ts types.Timestamp, tz string) (types.Int, *cerr.Error) { return ts.GetMinutes(tz) },
		func(d types.Duration) types.Int { return d.GetMinutes() },
	)
	t["getSeconds"] = timeAccessor(
		func(ts types.Timestamp, tz string) (types.Int, *cerr.Error) { return ts.GetSeconds(tz) },
		func(d types.Duration) types.Int { return d.GetSeconds() },
	)
	t["getMilliseconds"] = timeAccessor(
		func(ts types.Timestamp, tz string) (types.Int, *cerr.Error) { return ts.GetMilliseconds(tz) },
		func(d types.Duration) types.Int { return d.GetMilliseconds() },
	)
	t["getDayOfWeek"] = timestampOnlyAccessor(func(ts types.Timestamp, tz string) (types.Int, *cerr.Error) {
		return ts.GetDayOfWeek(tz)
	})
	t["getDayOfMonth"] = timestampOnlyAccessor(func(ts types.Timestamp, tz string) (types.Int, *cerr.Error) {
		return ts.GetDayOfMonth(tz)
	})
	t["getDate"] = timestampOnlyAccessor(func(ts types.Timestamp, tz string) (types.Int, *cerr.Error) {
		return ts.GetDate(tz)
	})
	t["getDayOfYear"] = timestampOnlyAccessor(func(ts types.Timestamp, tz string) (types.Int, *cerr.Error) {
		return ts.GetDayOfYear(tz)
	})
	t["getMonth"] = timestampOnlyAccessor(func(ts types.Timestamp, tz string) (types.Int, *cerr.Error) {
		return ts.GetMonth(tz)
	})
	t["getFullYear"] = timestampOnlyAccessor(func(ts types.Timestamp, tz string) (types.Int, *cerr.Error) {
		return ts.GetFullYear(tz)
	})
}

// timeAccessor builds a base-table function shared by a Timestamp/timezone
// form and a Duration form with no timezone (spec.md §4.1: getHours,
// getMinutes, getSeconds, getMilliseconds are defined on both kinds).
func timeAccessor(
	onTimestamp func(types.Timestamp, string) (types.Int, *cerr.Error),
	onDuration func(types.Duration) types.Int,
) activation.Function {
	return func(args []types.Value) types.Value {
		if len(args) < 1 || len(args) > 2 {
			return wrongArgCount("get*")
		}
		tz := ""
		if len(args) == 2 {
			s, ok := args[1].(types.String)
			if !ok {
				return errv(cerr.NoSuchOverload())
			}
			tz = string(s)
		}
		switch recv := args[0].(type) {
		case types.Timestamp:
			v, err := onTimestamp(recv, tz)
			if err != nil {
				return errv(err)
			}
			return v
		case types.Duration:
			if len(args) == 2 {
				return errv(cerr.NoSuchOverload())
			}
			return onDuration(recv)
		}
		if e, ok := types.AsError(args[0]); ok {
			return errv(e)
		}
		return errv(cerr.NoSuchOverload())
	}
}

// timestampOnlyAccessor builds a base-table function for accessors with no
// Duration counterpart (getDayOfWeek, getDayOfMonth, getDate, getDayOfYear,
// getMonth, getFullYear — spec.md §4.1 defines these on Timestamp only).
func timestampOnlyAccessor(onTimestamp func(types.Timestamp, string) (types.Int, *cerr.Error)) activation.Function {
	return func(args []types.Value) types.Value {
		if len(args) < 1 || len(args) > 2 {
			return wrongArgCount("get*")
		}
		ts, ok := args[0].(types.Timestamp)
		if !ok {
			if e, ok := types.AsError(args[0]); ok {
				return errv(e)
			}
			return errv(cerr.NoSuchOverload())
		}
		tz := ""
		if len(args) == 2 {
			s, ok := args[1].(types.String)
			if !ok {
				return errv(cerr.NoSuchOverload())
			}
			tz = string(s)
		}
		v, err := onTimestamp(ts, tz)
		if err != nil {
			return errv(err)
		}
		return v
	}
}
