// Command nutritrack is a small CLI client for the NutriTrack API: sign up,
// sign in, inspect the current session, and log meals from the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nutritrack/nutritrack/pkg/client"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: nutritrack [-server URL] <command> [args]

commands:
  signup   -username U -name N -email E -password P
  signin   -email E -password P
  signout
  whoami
  meals
  log-meal -name N -type breakfast|lunch|dinner|snack [-calories C -protein P -carbs C -fat F]
  nutrition`)
}

func run(args []string) error {
	global := flag.NewFlagSet("nutritrack", flag.ExitOnError)
	server := global.String("server", "http://localhost:8080", "API server base URL")
	global.Usage = usage
	if err := global.Parse(args); err != nil {
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		usage()
		os.Exit(2)
	}

	store, err := client.NewFileStore("")
	if err != nil {
		return err
	}

	api := client.New(*server, client.WithTokenStore(store))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := api.Load(ctx); err != nil {
		return err
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "signup":
		return signup(ctx, api, cmdArgs)
	case "signin":
		return signin(ctx, api, cmdArgs)
	case "signout":
		return api.SignOut()
	case "whoami":
		return whoami(ctx, api)
	case "meals":
		return meals(ctx, api)
	case "log-meal":
		return logMeal(ctx, api, cmdArgs)
	case "nutrition":
		return nutrition(ctx, api)
	default:
		usage()
		os.Exit(2)
		return nil
	}
}

func signup(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	username := fs.String("username", "", "username")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := api.SignUp(ctx, client.SignupData{
		Username: *username,
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}

	fmt.Printf("registered %s (#%d)\n", user.Username, user.ID)
	if api.State() != client.StateAuthenticated {
		fmt.Println("sign in to start a session")
	}
	return nil
}

func signin(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("signin", flag.ExitOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := api.SignIn(ctx, *email, *password)
	if err != nil {
		return err
	}

	fmt.Printf("signed in as %s\n", user.Username)
	return nil
}

func whoami(ctx context.Context, api *client.Client) error {
	if api.State() != client.StateAuthenticated {
		fmt.Println("not signed in")
		return nil
	}

	user, err := api.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s <%s> (#%d)\n", user.Username, user.Email, user.ID)
	return nil
}

func meals(ctx context.Context, api *client.Client) error {
	list, err := api.TodayMeals(ctx)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("no meals logged today")
		return nil
	}

	for _, m := range list {
		fmt.Printf("%-10s %-30s %4d kcal  %3dg protein\n", m.Type, m.Name, m.Calories, m.Protein)
	}
	return nil
}

func logMeal(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("log-meal", flag.ExitOnError)
	name := fs.String("name", "", "meal name")
	mealType := fs.String("type", "", "breakfast, lunch, dinner, or snack")
	calories := fs.Int("calories", 0, "calories")
	protein := fs.Int("protein", 0, "protein grams")
	carbs := fs.Int("carbs", 0, "carb grams")
	fat := fs.Int("fat", 0, "fat grams")
	if err := fs.Parse(args); err != nil {
		return err
	}

	meal, err := api.LogMeal(ctx, client.Meal{
		Name:     *name,
		Type:     *mealType,
		Calories: *calories,
		Protein:  *protein,
		Carbs:    *carbs,
		Fat:      *fat,
		Date:     time.Now(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("logged %s (#%d)\n", meal.Name, meal.ID)
	return nil
}

func nutrition(ctx context.Context, api *client.Client) error {
	entries, err := api.Nutrition(ctx)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("no nutrition entries yet")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %4d kcal  %3dg protein  %3dg carbs  %3dg fat\n",
			e.Date.Format("2006-01-02"), e.TotalCalories, e.TotalProtein, e.TotalCarbs, e.TotalFat)
	}
	return nil
}
