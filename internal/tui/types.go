package tui

import (
	"github.com/csheth/bookdeck/internal/infographic"
	"github.com/csheth/bookdeck/internal/pdfexport"
)

type stage int

const (
	stageInput stage = iota
	stageLoading
	stageResult
	stageError
)

func (s stage) String() string {
	switch s {
	case stageInput:
		return "input"
	case stageLoading:
		return "loading"
	case stageResult:
		return "result"
	case stageError:
		return "error"
	default:
		return "unknown"
	}
}

type inputField int

const (
	fieldTitle inputField = iota
	fieldAuthor
)

const heroTagline = "Turn any book into a ten-slide visual deep dive."

const validationMessage = "Please enter both a book title and an author."

const (
	minViewportWidth          = 40
	maxSlideWidth             = 110
	viewportHorizontalPadding = 4
)

type generateResultMsg struct {
	title  string
	author string
	doc    *infographic.Document
	err    error
}

type exportResultMsg struct {
	result pdfexport.Result
	err    error
}

type keyHint struct {
	Key         string
	Description string
}
