package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	flag.Parse()

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "niceboard-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)

	// Read-only calls; uploads write to the live board and are left to the CLI
	testSearch(ctx, session, "jobtypes summary", map[string]any{"type": "jobtypes", "display": "all"})
	testSearch(ctx, session, "remote jobs", map[string]any{
		"type":        "jobs",
		"fields":      []string{"title", "company.name", "location.name"},
		"filters":     map[string]any{"remote_only": true, "limit": 20},
		"display":     "show_n",
		"sample_size": 3,
	})
	testSearch(ctx, session, "invalid type", map[string]any{"type": "people"})

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

func testSearch(ctx context.Context, session *mcp.ClientSession, label string, args map[string]any) {
	fmt.Printf("\nTEST: search (%s)\n", label)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "search",
		Arguments: args,
	})
	if err != nil {
		log.Printf("search failed: %v", err)
		return
	}

	printResult(result)
	if result.IsError {
		fmt.Println("search returned a tool error")
		return
	}
	fmt.Println("search passed")
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
