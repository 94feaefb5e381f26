package option_test

import (
	"testing"

	"github.com/pouriyajamshidi/optrun/option"
)

type target struct {
	name  string
	count int
}

func TestApplyOrder(t *testing.T) {
	setName := func(n string) option.Option[target] {
		return func(tg *target) { tg.name = n }
	}

	var tg target
	option.Apply(&tg, setName("first"), nil, setName("second"), func(tg *target) { tg.count++ })

	if tg.name != "second" {
		t.Errorf("name = %q, want %q", tg.name, "second")
	}

	if tg.count != 1 {
		t.Errorf("count = %d, want 1", tg.count)
	}
}
