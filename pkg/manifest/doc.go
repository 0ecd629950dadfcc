// Package manifest loads widget declarations from YAML or JSONC files so pages
// can be described without Go code. A manifest file holds a "widgets" list;
// every entry names a registered widget kind and a page-unique id.
//
//	widgets:
//	  - kind: multi-input
//	    id: fruits
//	    label: Fruits
//	    choices: [Banana, Kiwi, {name: Dragon fruit, value: pitaya}]
//	    selected: [Banana]
package manifest
