package main

import "fmt"

// The instruction templates are fixed; only the page/group identity and the
// source text vary. Each template demands a bare JSON reply, though replies
// are still run through extractJSON because models wrap output anyway.

const operationsInstruction = `You are analyzing the source files of the "%s" page of a frontend codebase.
The files embed GraphQL operations as tagged template literals.

List every query and mutation operation used by this page. Respond with JSON
only, no commentary, in exactly this shape:

{"queries": [{"name": "OperationName"}], "mutations": [{"name": "OperationName"}]}

Use empty arrays when a kind is absent.

Source files:

%s`

const inventoryInstruction = `You are analyzing the source text of a frontend application.

Identify every page or route it contains. Respond with JSON only, no
commentary, as an array in exactly this shape:

[{"path": "/route", "component": "ComponentName", "description": "one sentence"}]

Source text:

%s`

const pageOperationsInstruction = `You are analyzing the source text of a frontend application, focusing on the
page at "%s".

List every GraphQL query and mutation operation that page uses. Respond with
JSON only, no commentary, in exactly this shape:

{"queries": [{"name": "OperationName"}], "mutations": [{"name": "OperationName"}]}

Use empty arrays when a kind is absent.

Source text:

%s`

// buildOperationsPrompt renders the per-group instruction with the group
// name and its concatenated file contents.
func buildOperationsPrompt(group string, blob string) string {
	return fmt.Sprintf(operationsInstruction, group, blob)
}

// buildInventoryPrompt renders the page-discovery instruction over one
// whole-application text blob.
func buildInventoryPrompt(blob string) string {
	return fmt.Sprintf(inventoryInstruction, blob)
}

// buildPageOperationsPrompt renders the per-page instruction reusing the
// same blob the inventory was discovered from.
func buildPageOperationsPrompt(pagePath string, blob string) string {
	return fmt.Sprintf(pageOperationsInstruction, pagePath, blob)
}
