package html

// EndpointReportTemplate renders the endpoint index grouped by controller
const EndpointReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Endpoint Index - {{.AnalysisDate}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #2c3e50;
            line-height: 1.6;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
        }

        header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 40px 20px;
            margin-bottom: 30px;
            border-radius: 8px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
        }

        header h1 {
            font-size: 2.5em;
            margin-bottom: 10px;
        }

        header p {
            font-size: 1.1em;
            opacity: 0.9;
        }

        .summary {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
        }

        .summary h2 {
            color: #667eea;
            margin-bottom: 15px;
            font-size: 1.5em;
        }

        .stats {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(160px, 1fr));
            gap: 15px;
            margin-top: 15px;
        }

        .stat-card {
            background: #f8f9fa;
            padding: 15px;
            border-radius: 6px;
            border-left: 4px solid #667eea;
        }

        .stat-card .label {
            font-size: 0.9em;
            color: #6c757d;
            margin-bottom: 5px;
        }

        .stat-card .value {
            font-size: 1.8em;
            font-weight: bold;
            color: #2c3e50;
        }

        .controller {
            background: white;
            margin-bottom: 20px;
            border-radius: 8px;
            overflow: hidden;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
        }

        .controller-header {
            padding: 16px 20px;
            background: #f8f9fa;
            border-bottom: 1px solid #e9ecef;
        }

        .controller-name {
            font-size: 1.3em;
            font-weight: 600;
        }

        .controller-meta {
            font-size: 0.9em;
            color: #6c757d;
            font-family: 'Courier New', monospace;
        }

        .method-badge {
            display: inline-block;
            min-width: 72px;
            text-align: center;
            padding: 4px 10px;
            border-radius: 4px;
            font-weight: bold;
            font-size: 0.85em;
            letter-spacing: 0.5px;
        }

        .method-get { background: #61affe; color: white; }
        .method-post { background: #49cc90; color: white; }
        .method-put { background: #fca130; color: white; }
        .method-delete { background: #f93e3e; color: white; }
        .method-patch { background: #50e3c2; color: white; }
        .method-default { background: #6c757d; color: white; }

        table {
            width: 100%;
            border-collapse: collapse;
        }

        th {
            background: #f8f9fa;
            padding: 10px 12px;
            text-align: left;
            font-weight: 600;
            color: #495057;
            border-bottom: 2px solid #dee2e6;
        }

        td {
            padding: 10px 12px;
            border-bottom: 1px solid #e9ecef;
        }

        tr:hover {
            background: #f8f9fa;
        }

        .endpoint-path {
            font-family: 'Courier New', monospace;
            font-weight: 600;
        }

        .fragment {
            font-family: 'Courier New', monospace;
            color: #e83e8c;
            font-size: 0.9em;
        }

        .location {
            font-family: 'Courier New', monospace;
            color: #6c757d;
            font-size: 0.85em;
        }

        footer {
            text-align: center;
            padding: 30px 20px;
            color: #6c757d;
            margin-top: 40px;
        }

        .no-endpoints {
            text-align: center;
            padding: 60px 20px;
            color: #6c757d;
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Endpoint Index</h1>
            <p>{{.ProjectRoot}} · Generated on {{.AnalysisDate}}</p>
        </header>

        <div class="summary">
            <h2>Overview</h2>
            <div class="stats">
                <div class="stat-card">
                    <div class="label">Total Endpoints</div>
                    <div class="value">{{.TotalEndpoints}}</div>
                </div>
                <div class="stat-card">
                    <div class="label">Controllers</div>
                    <div class="value">{{.TotalControllers}}</div>
                </div>
                {{range .MethodCounts}}
                <div class="stat-card">
                    <div class="label">{{.Method}}</div>
                    <div class="value">{{.Count}}</div>
                </div>
                {{end}}
            </div>
        </div>

        {{if .Controllers}}
            {{range .Controllers}}
            <div class="controller">
                <div class="controller-header">
                    <div class="controller-name">{{.ClassName}}</div>
                    <div class="controller-meta">{{.File}} · {{len .Endpoints}} endpoints</div>
                </div>
                <table>
                    <thead>
                        <tr>
                            <th>Method</th>
                            <th>URL</th>
                            <th>Handler</th>
                            <th>Declared As</th>
                            <th>Location</th>
                        </tr>
                    </thead>
                    <tbody>
                        {{range .Endpoints}}
                        <tr>
                            <td><span class="method-badge {{methodColor .HTTPMethod}}">{{.HTTPMethod}}</span></td>
                            <td class="endpoint-path">{{.FullPath}}</td>
                            <td>{{.MethodName}}</td>
                            <td class="fragment">{{if .OriginalClassPath}}{{.OriginalClassPath}} + {{end}}{{.OriginalMethodPath}}</td>
                            <td class="location">{{.StartLine}}:{{.StartColumn}}</td>
                        </tr>
                        {{end}}
                    </tbody>
                </table>
            </div>
            {{end}}
        {{else}}
            <div class="no-endpoints">
                <h3>No endpoints found</h3>
                <p>Make sure your controllers carry @RequestMapping or @GetMapping style annotations.</p>
            </div>
        {{end}}

        <footer>
            <p>Generated by <strong>goto-endpoint</strong></p>
        </footer>
    </div>
</body>
</html>
`
