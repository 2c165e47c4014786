package urls

// Download and documentation links shown by the guided steps.

// VSCodeDownload is the Visual Studio Code download page.
const VSCodeDownload = "https://code.visualstudio.com"

// NodeDownload is the Node.js download page. The LTS build is recommended.
const NodeDownload = "https://nodejs.org"

// GitDownload lists Git installers, including Git Bash for Windows.
const GitDownload = "https://git-scm.com/downloads"

// CopilotExtension is the GitHub Copilot extension in the VS Code
// marketplace.
const CopilotExtension = "https://marketplace.visualstudio.com/items?itemName=GitHub.copilot"

// CopilotDocs is the GitHub Copilot documentation.
const CopilotDocs = "https://docs.github.com/en/copilot"

// GitHub is where the activity repository is hosted.
const GitHub = "https://github.com"

// ProjectRepository is shown in the application header.
const ProjectRepository = "https://github.com/muurk/offsite"
