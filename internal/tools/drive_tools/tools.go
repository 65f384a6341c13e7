package drive_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tberndt/sheetfeed/internal/drive"
	"github.com/tberndt/sheetfeed/internal/server"
	"github.com/tberndt/sheetfeed/internal/tools/common"
)

// RegisterDriveTools registers the Drive tools with the MCP server. All of
// them operate on the folder the manager is bound to.
func RegisterDriveTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := registerListTools(s, sc); err != nil {
		return fmt.Errorf("failed to register list tools: %w", err)
	}
	if err := registerLinkTools(s, sc); err != nil {
		return fmt.Errorf("failed to register link tools: %w", err)
	}
	return nil
}

func registerListTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listFilesTool := mcp.NewTool("drive_list_files",
		mcp.WithDescription("List the files in the configured Google Drive folder, in the order the service reports them"),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of files to fetch per page (default: service default)"),
		),
		mcp.WithString("query",
			mcp.Description("Additional Drive query to AND with the folder filter, e.g. \"mimeType contains 'image/'\""),
		),
	)

	s.AddTool(listFilesTool, common.InstrumentedToolHandlerWithService("drive_list_files", "drive", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			opts := &drive.ListOptions{}
			if pageSize, ok := args["pageSize"].(float64); ok && pageSize > 0 {
				opts.PageSize = int64(pageSize)
			}
			if query, ok := args["query"].(string); ok {
				opts.Query = query
			}

			files, err := sc.Manager().ListFilesInFolder(ctx, opts)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list files: %v", err)), nil
			}

			result, _ := json.MarshalIndent(files, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Found %d file(s):\n%s", len(files), string(result))), nil
		}))

	listSubfoldersTool := mcp.NewTool("drive_list_subfolders",
		mcp.WithDescription("List the folders directly under the configured folder (or a given parent folder)"),
		mcp.WithString("parentId",
			mcp.Description("Parent folder ID (default: the configured folder)"),
		),
	)

	s.AddTool(listSubfoldersTool, common.InstrumentedToolHandlerWithService("drive_list_subfolders", "drive", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			parentID, _ := args["parentId"].(string)

			folders, err := sc.Manager().ListSubfolders(ctx, parentID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list subfolders: %v", err)), nil
			}

			result, _ := json.MarshalIndent(folders, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Found %d subfolder(s):\n%s", len(folders), string(result))), nil
		}))

	return nil
}

func registerLinkTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getLinkTool := mcp.NewTool("drive_get_link",
		mcp.WithDescription("Resolve a file by name, grant anyone-with-the-link read access and return the public share URL. Duplicate names resolve to the first match."),
		mcp.WithString("fileName",
			mcp.Required(),
			mcp.Description("Exact name of the file to share"),
		),
		mcp.WithString("folderId",
			mcp.Description("Subfolder ID to search in (default: the configured folder)"),
		),
	)

	s.AddTool(getLinkTool, common.InstrumentedToolHandlerWithService("drive_get_link", "drive", "share", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			fileName, ok := args["fileName"].(string)
			if !ok || fileName == "" {
				return mcp.NewToolResultError("fileName is required"), nil
			}
			folderID, _ := args["folderId"].(string)

			url, err := sc.Manager().GetDriveLink(ctx, fileName, folderID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get link: %v", err)), nil
			}

			return mcp.NewToolResultText(url), nil
		}))

	return nil
}
