package view

import "errors"

var (
	ErrTemplateNotFound = errors.New("view: template not found")
	ErrTemplateRead     = errors.New("view: failed to read template")
	ErrTemplateParse    = errors.New("view: failed to parse template")
)
