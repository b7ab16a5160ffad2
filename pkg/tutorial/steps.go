package tutorial

const backendURLPlaceholder = `{{ .BackendURL | default "https://your-app-name.onrender.com" }}`

var steps = []Step{
	{
		Title: "Part 1: The Database (Supabase)",
		Icon:  "🗄",
		Blocks: []Block{
			paragraph("First, we'll set up a powerful, free PostgreSQL database with Supabase."),
			ordered(1,
				"Navigate to https://database.new to create a new Supabase project.",
				"Give your project a name and a strong password. Save this password somewhere safe!",
				"Once your project is ready, go to the SQL Editor in the left sidebar.",
				"Copy and run the following SQL to create our `messages` table:",
			),
			code("schema.sql", "sql"),
			ordered(5, `Now, run this SQL to insert our "{{ .Message }}" message into the table:`),
			code("seed.sql", "sql"),
			ordered(6,
				"Finally, let's get your API credentials. In the Supabase dashboard, click on Project Settings (the gear icon in the bottom-left sidebar), then on Data API.",
			),
			callout(ToneDanger, "Important!",
				`Do not go to the "Database" settings page; the connection strings there (starting with postgresql://) are incorrect for this tutorial.`),
			bullets(
				"Project URL: located at the top of the Data API page. Copy this value.",
				"Project API Key: in the \"Project API keys\" section, copy the key labeled `anon` and `public`.",
			),
			paragraph("Keep this browser tab open. You'll need to copy these in the next part."),
		},
	},
	{
		Title: "Part 2: The Backend (Node.js & Render)",
		Icon:  "🖥",
		Blocks: []Block{
			paragraph("Now, let's create a simple server to communicate with our database and serve the data to our frontend."),
			ordered(1,
				"Create a new folder on your computer named `{{ .ProjectName }}` (or run `hellostack scaffold` to write the files below for you).",
				"Inside that folder, create a file named `package.json` and paste this content:",
			),
			code("package.json", "json"),
			ordered(3, "Create another file named `index.js` and paste this server code:"),
			code("index.js", "javascript"),
			ordered(4,
				"Create a new, empty repository on your GitHub account: https://github.com/new",
				"Push your new folder to GitHub using the command line. Run the following commands one by one inside your `{{ .ProjectName }}` folder.",
			),
			callout(ToneWarning, "Prerequisite:", "You must have Git installed on your computer for these commands to work: https://git-scm.com/downloads"),
			snippet(`git init
git add .
git commit -m "Initial backend setup"
git branch -M main
git remote add origin https://github.com/YOUR_USERNAME/YOUR_REPO_NAME.git
git push -u origin main`, "bash"),
			ordered(6,
				"Sign in to https://render.com and create a New Web Service.",
				"Connect the GitHub repository you just created.",
				"Render will auto-detect most settings. Ensure the Start Command is `node index.js`.",
				"Before deploying, go to the Environment tab and add two Environment Variables: `SUPABASE_URL` (your Project URL from Supabase) and `SUPABASE_KEY` (your `anon` public Project API Key).",
				"Click Create Web Service. Wait for it to deploy.",
				"Once it's live, copy your new Render service URL. It will look something like `https://your-app-name.onrender.com`. Save this for the final step!",
			),
		},
	},
	{
		Title: "Part 3: The Frontend (React & Vercel)",
		Icon:  "🌐",
		Blocks: []Block{
			paragraph("The final step is to connect to the backend you just deployed."),
			ordered(1,
				"Run `hellostack probe "+backendURLPlaceholder+"` (or set `HELLOSTACK_BACKEND_URL` and run `hellostack probe`).",
				"hellostack appends `/api/hello` for you, so just provide the base URL.",
				`If everything is set up correctly, you will see a success message: "{{ .Message }}".`,
			),
			callout(ToneDanger, "Troubleshooting Common Errors:",
				"CORS Error: your backend isn't allowing your frontend to talk to it. The provided `index.js` includes `app.use(cors())` to prevent this.\n"+
					"404 Not Found: you are hitting the wrong endpoint. Make sure you are testing "+backendURLPlaceholder+"/api/hello.\n"+
					"500 Internal Server Error: the most common cause is that the `SUPABASE_URL` or `SUPABASE_KEY` environment variables on Render are incorrect or missing.\n"+
					"Failed to Fetch / Network Error: check that your Render URL is correct, your internet is working, and that your Render service is not asleep (it may take 30s to wake up on the free plan)."),
		},
	},
	{
		Title: "Part 4: Deploy Your Own Frontend",
		Icon:  "🚀",
		Blocks: []Block{
			paragraph("To complete the journey, deploy your own frontend application on Vercel."),
			ordered(1,
				"Create a new React application or fork the repository for this tutorial app.",
				"Push your React project code to a new GitHub repository.",
				"Sign in to https://vercel.com and create a new project, importing the GitHub repo you just made.",
				"Vercel will auto-detect the settings. Before deploying, go to the project's Settings > Environment Variables.",
				"Add a variable with the key `VITE_BACKEND_URL` and set its value to your Render backend URL ("+backendURLPlaceholder+"). The `VITE_` prefix is important for React apps using Vite to expose it to the browser.",
				"Deploy! You now have a live, full-stack application that you built from scratch. Congratulations!",
			),
		},
	},
}
