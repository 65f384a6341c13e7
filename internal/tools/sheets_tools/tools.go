package sheets_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tberndt/sheetfeed/internal/dataset"
	"github.com/tberndt/sheetfeed/internal/server"
	"github.com/tberndt/sheetfeed/internal/tools/common"
)

// RegisterSheetsTools registers the Sheets MCP tools. Write tools are
// skipped entirely when the server context is read-only, so a client never
// sees tools it cannot call.
func RegisterSheetsTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if sc.ReadOnly() {
		return nil
	}
	return registerUploadTools(s, sc)
}

func registerUploadTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	uploadTool := mcp.NewTool("sheets_upload_dataset",
		mcp.WithDescription("Upload a CSV dataset into a spreadsheet sheet, embedding Drive-hosted images via =IMAGE formulas. The first CSV row is the header. Image columns name Drive files; empty cells become 'no image', a missing file aborts the upload."),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("ID of the target spreadsheet"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Name of the sheet (tab) to write; created if absent"),
		),
		mcp.WithString("csv",
			mcp.Required(),
			mcp.Description("The dataset as CSV text, header row first"),
		),
		mcp.WithString("imageColumns",
			mcp.Description("Image columns as comma-separated column=folderId pairs, e.g. \"photo=1AbC,logo=\". An empty folderId means the configured folder."),
		),
	)

	s.AddTool(uploadTool, common.InstrumentedToolHandlerWithService("sheets_upload_dataset", "sheets", "upload", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			spreadsheetID, ok := args["spreadsheetId"].(string)
			if !ok || spreadsheetID == "" {
				return mcp.NewToolResultError("spreadsheetId is required"), nil
			}
			sheetName, ok := args["sheetName"].(string)
			if !ok || sheetName == "" {
				return mcp.NewToolResultError("sheetName is required"), nil
			}
			csvText, ok := args["csv"].(string)
			if !ok || csvText == "" {
				return mcp.NewToolResultError("csv is required"), nil
			}

			table, err := dataset.FromCSV(strings.NewReader(csvText))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid CSV: %v", err)), nil
			}

			imageCols, err := parseImageColumns(args["imageColumns"])
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			result, err := sc.Manager().CreateSheetWithData(ctx, spreadsheetID, sheetName, table, imageCols)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to upload dataset: %v", err)), nil
			}

			out, _ := json.MarshalIndent(result, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Dataset uploaded:\n%s", string(out))), nil
		}))

	return nil
}

// parseImageColumns turns "photo=1AbC,logo=" into {"photo": "1AbC", "logo": ""}.
func parseImageColumns(arg interface{}) (map[string]string, error) {
	spec, ok := arg.(string)
	if !ok || spec == "" {
		return nil, nil
	}

	cols := make(map[string]string)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, folderID, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid imageColumns entry %q, expected column=folderId", pair)
		}
		cols[name] = folderID
	}
	return cols, nil
}
