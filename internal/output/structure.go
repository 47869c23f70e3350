// Package output renders the Markdown sections of the snapshot document.
package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/temirov/toai/internal/types"
)

const (
	defaultLanguageTag      = types.DefaultLanguageTag
	structureHeading        = "## Project Structure\n\n"
	codeFence               = "```"
	indentSpacer            = "  "
	excludedNoteFormat      = "*Note: skipped %d ignored entries (archives, binary files, service directories)*\n\n"
	sectionSeparator        = "---\n\n"
	directoryLineFormat     = "%s%s %s/\n"
	fileLineFormat          = "%s%s %s\n"
	rootStructureParentPath = ""
)

type structureNode struct {
	entry       types.TreeEntry
	directories []*structureNode
	files       []types.TreeEntry
}

// StructureRenderer renders the directory overview of a filtered traversal.
type StructureRenderer struct{}

// NewStructureRenderer constructs a StructureRenderer.
func NewStructureRenderer() *StructureRenderer {
	return &StructureRenderer{}
}

// Render produces the structure section for entries. Entries must already exclude ignored
// directories and ignored, archive or binary files; excluded is the number of those skipped.
func (renderer *StructureRenderer) Render(entries []types.TreeEntry, excluded int) string {
	root := buildStructure(entries)

	var builder strings.Builder
	builder.WriteString(structureHeading)
	builder.WriteString(codeFence + "\n")
	writeStructureNode(&builder, root, 0)
	builder.WriteString(codeFence + "\n\n")
	if excluded > 0 {
		fmt.Fprintf(&builder, excludedNoteFormat, excluded)
	}
	builder.WriteString(sectionSeparator)
	return builder.String()
}

func buildStructure(entries []types.TreeEntry) *structureNode {
	root := &structureNode{entry: types.TreeEntry{Kind: types.EntryKindDirectory}}
	directories := map[string]*structureNode{rootStructureParentPath: root}

	var ensureDirectory func(relativePath string) *structureNode
	ensureDirectory = func(relativePath string) *structureNode {
		if node, found := directories[relativePath]; found {
			return node
		}
		node := &structureNode{entry: types.TreeEntry{
			RelativePath: relativePath,
			Kind:         types.EntryKindDirectory,
			Depth:        strings.Count(relativePath, types.ForwardSlashSeparator) + 1,
		}}
		directories[relativePath] = node
		parent := ensureDirectory(parentPath(relativePath))
		parent.directories = append(parent.directories, node)
		return node
	}

	for _, entry := range entries {
		if entry.Kind == types.EntryKindDirectory {
			ensureDirectory(entry.RelativePath)
			continue
		}
		parent := ensureDirectory(parentPath(entry.RelativePath))
		parent.files = append(parent.files, entry)
	}
	return root
}

func writeStructureNode(builder *strings.Builder, node *structureNode, level int) {
	indent := strings.Repeat(indentSpacer, level)
	sort.Slice(node.directories, func(left, right int) bool {
		return node.directories[left].entry.Name() < node.directories[right].entry.Name()
	})
	sort.Slice(node.files, func(left, right int) bool {
		return node.files[left].Name() < node.files[right].Name()
	})
	for _, directory := range node.directories {
		fmt.Fprintf(builder, directoryLineFormat, indent, directoryGlyph, directory.entry.Name())
		writeStructureNode(builder, directory, level+1)
	}
	for _, file := range node.files {
		fmt.Fprintf(builder, fileLineFormat, indent, CategoryForName(file.Name()).Glyph(), file.Name())
	}
}

func parentPath(relativePath string) string {
	separatorIndex := strings.LastIndex(relativePath, types.ForwardSlashSeparator)
	if separatorIndex < 0 {
		return rootStructureParentPath
	}
	return relativePath[:separatorIndex]
}
