package model

import "testing"

func TestValidCondition(t *testing.T) {
	for _, c := range []string{
		ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionNeedsRepair,
	} {
		if !ValidCondition(c) {
			t.Errorf("ValidCondition(%q) = false", c)
		}
	}
	for _, c := range []string{"", "mint", "broken", "GOOD"} {
		if ValidCondition(c) {
			t.Errorf("ValidCondition(%q) = true", c)
		}
	}
}
