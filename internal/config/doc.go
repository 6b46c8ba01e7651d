// Package config loads and validates pipeline files.
//
// A pipeline is a TOML file naming an input document, an output
// document and an ordered list of steps to run between them:
//
//	[input]
//	path = "article.mk"
//	format = "markup"
//
//	[output]
//	path = "article.out.mk"
//
//	[[step]]
//	op = "wrap"
//	start = [0, 1]
//	end = [0, 4]
//
//	[step.span]
//	name = "b"
//
//	[[step]]
//	op = "filter"
//	script = "filters/strip_empty.lua"
//
// Ranges are addressed by child-index paths from the document root;
// the last index is the offset inside the addressed parent, counting
// children for elements and bytes for text nodes.
//
// Load rejects a pipeline before anything executes: missing paths,
// unknown formats, unknown ops and steps missing the fields their op
// requires all fail with a StepError naming the offending step.
package config
