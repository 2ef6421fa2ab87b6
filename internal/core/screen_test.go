package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 2)

	s.SetColor(1, 0, '●', ColorRed)
	cell := s.GetCell(1, 0)
	if cell.Rune != '●' || cell.Color != ColorRed {
		t.Errorf("GetCell(1, 0) = %+v, expected red circle", cell)
	}

	s.DrawTextColor(0, 1, "ab", ColorBlue)
	if s.GetCell(1, 1).Color != ColorBlue {
		t.Errorf("DrawTextColor did not color text")
	}

	if got := s.GetCell(-5, -5); got.Rune != ' ' || got.Color != ColorDefault {
		t.Errorf("Out of bounds GetCell = %+v, expected blank", got)
	}

	s.Clear()
	if s.GetCell(1, 0).Color != ColorDefault {
		t.Error("Clear should reset colors")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "●■▲")

	if s.Row(0) != "●■▲       " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "WIN", ColorGreen)

	if s.Row(0) != "    WIN    " {
		t.Errorf("Row(0) = %q, expected centered text", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorGray)

	expected := "┌───┐\n│   │\n└───┘"
	if s.String() != expected {
		t.Errorf("DrawBox result:\n%s\nexpected:\n%s", s.String(), expected)
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("box should use the given color")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetColor(2, 2, 'X', ColorYellow)

	s.Resize(10, 10)
	if s.Width() != 10 || s.Height() != 10 {
		t.Errorf("After resize: %dx%d, expected 10x10", s.Width(), s.Height())
	}
	if s.GetCell(2, 2).Rune != 'X' || s.GetCell(2, 2).Color != ColorYellow {
		t.Error("Resize should preserve content")
	}

	s.Resize(2, 2)
	if strings.Contains(s.String(), "X") {
		t.Error("Content outside the new bounds should be dropped")
	}
}

func TestScreenFill(t *testing.T) {
	s := NewScreen(6, 4)
	s.SetColor(0, 0, 'X', ColorRed)
	s.Fill(NewRect(1, 1, 3, 2), '#')

	expected := "X     \n ###  \n ###  \n      "
	if s.String() != expected {
		t.Errorf("String() = %q, expected %q", s.String(), expected)
	}

	// Clipped at the screen edge
	s.Fill(NewRect(4, 3, 5, 5), '+')
	if s.Row(3) != "    ++" {
		t.Errorf("Row(3) = %q", s.Row(3))
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(4, 1)
	if s.Row(3) != "    " {
		t.Errorf("Row(3) = %q, expected blanks", s.Row(3))
	}
}
