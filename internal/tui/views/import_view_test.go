package views

import (
	"testing"

	"github.com/rivo/tview"

	"github.com/Martin212038201938/FunnyFunnel/internal/tui/client"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/model"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/ui"
)

func TestImportFormSubmitBuildsOptions(t *testing.T) {
	iv := NewImportView(ui.DefaultTheme(), model.NewBoard(nil))

	set := func(index int, text string) {
		iv.form.GetFormItem(index).(*tview.InputField).SetText(text)
	}
	set(0, "KI GenAI")
	set(1, "Berlin")
	set(2, "50")
	set(3, "2")
	set(4, "7")
	set(5, "5")
	set(6, "Engineer")

	var got client.SearchOptions
	iv.SetOnSearch(func(opts client.SearchOptions) { got = opts })
	iv.submit()

	want := client.SearchOptions{
		Keywords:    "KI GenAI",
		Location:    "Berlin",
		Radius:      50,
		MaxPages:    2,
		AgeDays:     7,
		MaxResults:  5,
		TitleFilter: "Engineer",
	}
	if got != want {
		t.Fatalf("options = %+v, want %+v", got, want)
	}
}

func TestImportFormDefaults(t *testing.T) {
	iv := NewImportView(ui.DefaultTheme(), model.NewBoard(nil))

	var got client.SearchOptions
	iv.SetOnSearch(func(opts client.SearchOptions) { got = opts })
	iv.submit()

	if got.Radius != 30 || got.MaxPages != 1 || got.AgeDays != 0 || got.MaxResults != 10 {
		t.Fatalf("defaults = %+v, want radius 30, pages 1, age 0, max 10", got)
	}
}
