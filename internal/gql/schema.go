package gql

import (
	"errors"
	"time"

	"github.com/graphql-go/graphql"

	"taskdeck.org/internal/identity"
	"taskdeck.org/internal/task"
)

var errNoRequestContext = errors.New("request context is not configured")

// NewSchema builds the executable schema. Each field maps 1:1 to a resource
// service method; authorization lives in the services, never in resolvers.
func NewSchema() (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"role": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	taskType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Task",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"state":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"from":      &graphql.Field{Type: graphql.String},
			"to":        &graphql.Field{Type: graphql.String},
			"alertAt":   &graphql.Field{Type: graphql.DateTime},
			"eventDate": &graphql.Field{Type: graphql.String},
			"userId":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	userInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"role": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	taskInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "TaskInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"state":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"from":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"to":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"alertAt":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"eventDate": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"userById": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					rc, err := services(p)
					if err != nil {
						return nil, err
					}
					return rc.Users.FindByID(p.Context, int64(p.Args["id"].(int)))
				},
			},
			"taskById": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					rc, err := services(p)
					if err != nil {
						return nil, err
					}
					return rc.Tasks.FindByID(p.Context, int64(p.Args["id"].(int)))
				},
			},
			"tasks": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(taskType)),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					rc, err := services(p)
					if err != nil {
						return nil, err
					}
					return rc.Tasks.ListOwn(p.Context)
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					rc, err := services(p)
					if err != nil {
						return nil, err
					}
					return rc.Users.Login(p.Context)
				},
			},
			"register": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					rc, err := services(p)
					if err != nil {
						return nil, err
					}
					return rc.Users.Register(p.Context)
				},
			},
			"createUsers": &graphql.Field{
				Type: graphql.NewList(userType),
				Args: graphql.FieldConfigArgument{
					"users": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userInput))),
					},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					rc, err := services(p)
					if err != nil {
						return nil, err
					}
					return rc.Users.CreateMany(p.Context, userInputsFromArgs(p.Args["users"]))
				},
			},
			"deleteUser": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					rc, err := services(p)
					if err != nil {
						return nil, err
					}
					return rc.Users.Delete(p.Context, int64(p.Args["id"].(int)))
				},
			},
			"createTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"task": &graphql.ArgumentConfig{Type: graphql.NewNonNull(taskInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					rc, err := services(p)
					if err != nil {
						return nil, err
					}
					return rc.Tasks.Create(p.Context, taskInputFromArgs(p.Args["task"]))
				},
			},
			"updateTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"task": &graphql.ArgumentConfig{Type: graphql.NewNonNull(taskInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					rc, err := services(p)
					if err != nil {
						return nil, err
					}
					return rc.Tasks.Update(p.Context, int64(p.Args["id"].(int)), taskInputFromArgs(p.Args["task"]))
				},
			},
			"deleteTask": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					rc, err := services(p)
					if err != nil {
						return nil, err
					}
					return rc.Tasks.Delete(p.Context, int64(p.Args["id"].(int)))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

func services(p graphql.ResolveParams) (*RequestContext, error) {
	rc, ok := RequestContextFrom(p.Context)
	if !ok {
		return nil, errNoRequestContext
	}
	return rc, nil
}

// userInputsFromArgs converts the coerced argument value into the validated
// input shape. The executor has already enforced presence and types.
func userInputsFromArgs(raw any) []identity.UserInput {
	list, _ := raw.([]any)
	out := make([]identity.UserInput, 0, len(list))
	for _, item := range list {
		fields, _ := item.(map[string]any)
		in := identity.UserInput{}
		if v, ok := fields["id"].(int); ok {
			in.ID = int64(v)
		}
		if v, ok := fields["role"].(string); ok {
			in.Role = v
		}
		out = append(out, in)
	}
	return out
}

func taskInputFromArgs(raw any) task.Input {
	fields, _ := raw.(map[string]any)
	in := task.Input{}
	if v, ok := fields["name"].(string); ok {
		in.Name = v
	}
	if v, ok := fields["state"].(string); ok {
		in.State = v
	}
	if v, ok := fields["from"].(string); ok {
		in.From = &v
	}
	if v, ok := fields["to"].(string); ok {
		in.To = &v
	}
	if v, ok := fields["alertAt"].(time.Time); ok {
		in.AlertAt = &v
	}
	if v, ok := fields["eventDate"].(string); ok {
		in.EventDate = &v
	}
	return in
}
