package mcp

import "github.com/mark3labs/mcp-go/mcp"

// diagnoseLeafTool defines the diagnose_leaf MCP tool.
var diagnoseLeafTool = mcp.NewTool("diagnose_leaf",
	mcp.WithDescription("Diagnose a plant leaf photo. Returns the ranked disease predictions with confidence scores and care advice."),
	mcp.WithString("image_path",
		mcp.Required(),
		mcp.Description("Path to the leaf image file (jpg or png)"),
	),
	mcp.WithBoolean("save",
		mcp.Description("Save the diagnosis to the logged-in user's garden (default false)"),
	),
)

// listGardenTool defines the list_garden MCP tool.
var listGardenTool = mcp.NewTool("list_garden",
	mcp.WithDescription("List the saved diagnoses in the logged-in user's garden."),
)

// getSchedulesTool defines the get_watering_schedules MCP tool.
var getSchedulesTool = mcp.NewTool("get_watering_schedules",
	mcp.WithDescription("List the user's watering schedules with next-due dates and overdue status."),
)

// waterPlantTool defines the water_plant MCP tool.
var waterPlantTool = mcp.NewTool("water_plant",
	mcp.WithDescription("Mark a plant as watered today, resetting its watering schedule."),
	mcp.WithNumber("diagnosis_id",
		mcp.Required(),
		mcp.Description("ID of the garden diagnosis the schedule belongs to"),
	),
)

// getWeatherTool defines the get_weather MCP tool.
var getWeatherTool = mcp.NewTool("get_weather",
	mcp.WithDescription("Get current weather and a plant-care tip for a location. Defaults to the configured location."),
	mcp.WithNumber("latitude",
		mcp.Description("Latitude in decimal degrees"),
	),
	mcp.WithNumber("longitude",
		mcp.Description("Longitude in decimal degrees"),
	),
)

// askAssistantTool defines the ask_assistant MCP tool.
var askAssistantTool = mcp.NewTool("ask_assistant",
	mcp.WithDescription("Ask the LeafDoctor plant-care assistant a question."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The plant-care question to ask"),
	),
)
