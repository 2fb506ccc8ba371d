package tools

import (
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/entitycatalog"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/tool"
)

// RegisterAll builds every concrete tool and registers it into reg. Called
// once at process start by the CLI, after the entity catalog has loaded.
func RegisterAll(reg *tool.Registry, cat *entitycatalog.Catalog) {
	reg.Register(NewSearchLogsTool())
	reg.Register(NewFilterByTimeTool())
	reg.Register(NewFilterBySeverityTool())
	reg.Register(NewFilterByFieldTool())
	reg.Register(NewGetLogCountTool())
	reg.Register(NewExtractEntitiesTool(cat))
	reg.Register(NewCountEntitiesTool(cat))
	reg.Register(NewAggregateEntitiesTool(cat))
	reg.Register(NewFindEntityRelationshipsTool(cat))
	reg.Register(NewNormalizeTermTool())
	reg.Register(NewFuzzySearchTool())
	reg.Register(NewReturnLogsTool())
	reg.Register(NewFinalizeAnswerTool())
}
