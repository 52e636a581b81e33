// Package pb holds the wire protocol spoken between the client and the
// game server. Messages are described by blockfall.proto; the descriptor
// is assembled here at init and messages travel as dynamicpb messages,
// so the default gRPC codec carries them.
package pb

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

const (
	protoPackage = "blockfall.v1"
	ServiceName  = protoPackage + ".GameService"
)

// File is the descriptor of blockfall.proto.
var File protoreflect.FileDescriptor

var (
	pointDesc, rowDesc, kindCountDesc, snapshotDesc protoreflect.MessageDescriptor
	newGameDesc, commandDesc, gameDesc              protoreflect.MessageDescriptor
	scoreEntryDesc, submitScoreDesc                 protoreflect.MessageDescriptor
	scoresRequestDesc, scoresResponseDesc           protoreflect.MessageDescriptor
)

func init() {
	fd, err := protodesc.NewFile(fileDescriptorProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("pb: invalid descriptor: %v", err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("pb: unable to register descriptor: %v", err))
	}
	File = fd

	msgs := fd.Messages()
	pointDesc = msgs.ByName("Point")
	rowDesc = msgs.ByName("Row")
	kindCountDesc = msgs.ByName("KindCount")
	snapshotDesc = msgs.ByName("Snapshot")
	newGameDesc = msgs.ByName("NewGameRequest")
	commandDesc = msgs.ByName("CommandRequest")
	gameDesc = msgs.ByName("GameRequest")
	scoreEntryDesc = msgs.ByName("ScoreEntry")
	submitScoreDesc = msgs.ByName("SubmitScoreRequest")
	scoresRequestDesc = msgs.ByName("ScoresRequest")
	scoresResponseDesc = msgs.ByName("ScoresResponse")
}

type fieldType = descriptorpb.FieldDescriptorProto_Type

const (
	typeBool    = descriptorpb.FieldDescriptorProto_TYPE_BOOL
	typeInt32   = descriptorpb.FieldDescriptorProto_TYPE_INT32
	typeInt64   = descriptorpb.FieldDescriptorProto_TYPE_INT64
	typeUint64  = descriptorpb.FieldDescriptorProto_TYPE_UINT64
	typeString  = descriptorpb.FieldDescriptorProto_TYPE_STRING
	typeMessage = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
)

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("blockfall/v1/blockfall.proto"),
		Package: proto.String(protoPackage),
		Syntax:  proto.String("proto3"),
		Options: &descriptorpb.FileOptions{GoPackage: proto.String("blockfall/pb")},
		MessageType: []*descriptorpb.DescriptorProto{
			message("Point",
				scalar("x", 1, typeInt32),
				scalar("y", 2, typeInt32),
			),
			message("Row",
				repeated(scalar("cells", 1, typeBool)),
			),
			message("KindCount",
				scalar("kind", 1, typeString),
				scalar("count", 2, typeInt32),
			),
			message("Snapshot",
				scalar("game_id", 1, typeString),
				repeated(nested("board", 2, "Row")),
				repeated(nested("active", 3, "Point")),
				repeated(nested("ghost", 4, "Point")),
				scalar("active_kind", 5, typeString),
				scalar("next_kind", 6, typeString),
				scalar("score", 7, typeInt64),
				scalar("lines_cleared", 8, typeInt32),
				scalar("level", 9, typeInt32),
				scalar("starting_level", 10, typeInt32),
				scalar("game_over", 11, typeBool),
				scalar("outcome", 12, typeString),
				repeated(scalar("cleared", 13, typeInt32)),
				scalar("accepted", 14, typeBool),
				repeated(nested("stats", 15, "KindCount")),
			),
			message("NewGameRequest",
				scalar("seed", 1, typeUint64),
				scalar("starting_level", 2, typeInt32),
			),
			message("CommandRequest",
				scalar("game_id", 1, typeString),
				scalar("command", 2, typeString),
			),
			message("GameRequest",
				scalar("game_id", 1, typeString),
			),
			message("ScoreEntry",
				scalar("name", 1, typeString),
				scalar("score", 2, typeInt64),
				scalar("lines_cleared", 3, typeInt32),
			),
			message("SubmitScoreRequest",
				scalar("game_id", 1, typeString),
				scalar("name", 2, typeString),
			),
			message("ScoresRequest",
				scalar("limit", 1, typeInt32),
			),
			message("ScoresResponse",
				repeated(nested("entries", 1, "ScoreEntry")),
			),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("GameService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("NewGame", "NewGameRequest", "Snapshot"),
				method("Command", "CommandRequest", "Snapshot"),
				method("GetSnapshot", "GameRequest", "Snapshot"),
				method("EndGame", "GameRequest", "Snapshot"),
				method("SubmitScore", "SubmitScoreRequest", "ScoreEntry"),
				method("Scores", "ScoresRequest", "ScoresResponse"),
			},
		}},
	}
}

func message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{Name: proto.String(name), Field: fields}
}

func scalar(name string, number int32, t fieldType) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   t.Enum(),
	}
}

func nested(name string, number int32, msg string) *descriptorpb.FieldDescriptorProto {
	f := scalar(name, number, typeMessage)
	f.TypeName = proto.String(typeName(msg))
	return f
}

func repeated(f *descriptorpb.FieldDescriptorProto) *descriptorpb.FieldDescriptorProto {
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

func method(name, in, out string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String(typeName(in)),
		OutputType: proto.String(typeName(out)),
	}
}

func typeName(msg string) string { return "." + protoPackage + "." + msg }
