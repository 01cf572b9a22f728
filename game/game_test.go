package game

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOpponent(t *testing.T) {
	if o := Opponent(Player(White)); o != Player(Black) {
		t.Errorf("Expected White's opponent to be Black. Got %v instead", o)
	}
	if o := Opponent(Player(Black)); o != Player(White) {
		t.Errorf("Expected Black's opponent to be White. Got %v instead", o)
	}
}

func TestColourFormat(t *testing.T) {
	got := []string{
		fmt.Sprintf("%v", None),
		fmt.Sprintf("%v", Black),
		fmt.Sprintf("%v", White),
		fmt.Sprintf("%v", Player(White)),
	}
	want := []string{"None", "Black", "White", "White"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("colour formatting (-want +got):\n%s", diff)
	}
}
