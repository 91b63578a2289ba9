/*
Package tree turns a nested question/answer document into a navigable hierarchy.

A document is a mapping of labels (categories or questions) whose values are either
nested mappings or answer text:

	{
	  "Payments": {
	    "How do I pay?": "By card or bank transfer."
	  }
	}

Answers are text. In YAML a plain date such as 2024-01-01 is kept as written, but
numbers, booleans and null are format errors and have to be quoted:

	Shipping:
	  When do you ship?: 2024-01-01
	  How many days?: "3"

The Builder walks the document depth-first, in document order, and stores every label
and answer in an arena.Arena. The Navigator answers the label-keyed questions a
conversation needs: which labels sit under a label, whether a label directly owns an
answer, and whether some text is known at all.

A built Navigator is immutable and safe for concurrent use.
*/
package tree
