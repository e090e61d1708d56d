// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"fmt"
	"regexp"

	gc "gopkg.in/check.v1"
)

type anyMatchesChecker struct {
	*gc.CheckerInfo
}

// AnyMatches checks that at least one string of a []string matches a
// regular expression. The expression is anchored at both ends.
var AnyMatches gc.Checker = &anyMatchesChecker{
	&gc.CheckerInfo{Name: "AnyMatches", Params: []string{"obtained", "regex"}},
}

func (c *anyMatchesChecker) Check(params []interface{}, names []string) (bool, string) {
	obtained, ok := params[0].([]string)
	if !ok {
		return false, "obtained value is not a []string"
	}
	pattern, ok := params[1].(string)
	if !ok {
		return false, "regex is not a string"
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return false, fmt.Sprintf("cannot compile regex: %v", err)
	}
	for _, s := range obtained {
		if re.MatchString(s) {
			return true, ""
		}
	}
	return false, ""
}
