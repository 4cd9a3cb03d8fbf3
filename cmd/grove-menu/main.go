// Command grove-menu is a small nested-menu demo built on package menu.
package main

import (
	"fmt"

	"github.com/grove-tui/grove/cursor"
	"github.com/grove-tui/grove/menu"
)

func main() {
	var m *menu.Menu

	fileItems := cursor.New([]menu.Item{
		{Label: "New", Payload: func() { fmt.Println("\nnew file") }},
		{Label: "Open", Payload: func() { fmt.Println("\nopen file") }},
		{Label: "Save", Payload: func() { fmt.Println("\nsave file") }},
	}, true)
	editItems := cursor.New([]menu.Item{
		{Label: "Undo", Payload: func() { fmt.Println("\nundo") }},
		{Label: "Redo", Payload: func() { fmt.Println("\nredo") }},
	}, true)

	top := &menu.Level{
		Mode: menu.Horizontal,
	}
	top.Items = cursor.New([]menu.Item{
		{Label: "File", Payload: func() { m.Push(&menu.Level{Items: fileItems, Mode: menu.Vertical}, 0) }},
		{Label: "Edit", Payload: func() { m.Push(&menu.Level{Items: editItems, Mode: menu.Vertical}, 0) }},
	}, true)

	m = menu.New(top)
	m.Run()
}
